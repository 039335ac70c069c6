package entity

// bytesPerGiB converts declared storage quotas (gibibytes) into the raw byte
// counts the management API expects.
const bytesPerGiB = int64(1073741824)

// quotaResourceVCPUs is the one quota resource that is a plain count, not a
// storage size, and is therefore never scaled.
const quotaResourceVCPUs = "VCPUS"

// projectHook flattens the declared provider sub-entities into the account
// reference list the management API expects, hoists nutanix_pc network
// configuration to the project level, converts quotas into a resource
// domain, and drops fields that are local to the declaration.
func projectHook(compiled *Fields) (*Fields, error) {
	out := compiled.Clone()

	accountRefs := []any{}
	out.Set("account_reference_list", accountRefs)

	rawProviders, _ := out.Delete("provider_list")
	providers, _ := rawProviders.([]any)
	for _, raw := range providers {
		p, err := asFields(raw)
		if err != nil {
			return nil, ValidationError{Field: "provider_list", Reason: err.Error()}
		}

		providerType, _ := p.GetString("provider_type")
		if providerType == providerTypeNutanixPC {
			if subnets, ok := p.GetList("subnet_reference_list"); ok {
				existing, _ := out.GetList("subnet_reference_list")
				out.Set("subnet_reference_list", append(existing, subnets...))
			}
			if networks, ok := p.GetList("external_network_list"); ok {
				existing, _ := out.GetList("external_network_list")
				out.Set("external_network_list", append(existing, networks...))
			}
			if defaultSubnet, ok := p.Get("default_subnet_reference"); ok {
				out.Set("default_subnet_reference", defaultSubnet)
			}
		}

		if ref, ok := p.Get("account_reference"); ok {
			accountRefs = append(accountRefs, ref)
		}
	}
	out.Set("account_reference_list", accountRefs)

	if rawQuotas, ok := out.Delete("quotas"); ok {
		quotas, err := asFields(rawQuotas)
		if err != nil {
			return nil, ValidationError{Field: "quotas", Reason: err.Error()}
		}
		resources := []any{}
		for _, name := range quotas.Keys() {
			raw, _ := quotas.Get(name)
			limit, ok := raw.(int64)
			if !ok {
				return nil, ValidationError{Field: "quotas", Reason: "quota values must be integers"}
			}
			if name != quotaResourceVCPUs {
				limit *= bytesPerGiB
			}
			resources = append(resources, NewFields().
				Set("limit", limit).
				Set("resource_type", name))
		}
		out.Set("resource_domain", NewFields().Set("resources", resources))
	}

	// Environment definitions drive local tooling only; the remote API has
	// no field for them.
	out.Delete("environment_definition_list")

	return out, nil
}
