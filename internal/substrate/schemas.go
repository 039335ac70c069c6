package substrate

// JSON schemas for the spec blobs of each built-in provider type. These
// validate structure only; semantic checks (image existence, subnet
// reachability) belong to the remote side.

const ahvVMSchema = `{
  "type": "object",
  "required": ["resources"],
  "properties": {
    "type": {"type": "string"},
    "name": {"type": "string"},
    "categories": {"type": "object"},
    "resources": {
      "type": "object",
      "required": ["memory_size_mib", "num_sockets"],
      "properties": {
        "num_sockets": {"type": "integer", "minimum": 1},
        "num_vcpus_per_socket": {"type": "integer", "minimum": 1},
        "memory_size_mib": {"type": "integer", "minimum": 1},
        "power_state": {"type": "string", "enum": ["ON", "OFF"]},
        "nic_list": {"type": "array", "items": {"type": "object"}},
        "disk_list": {"type": "array", "items": {"type": "object"}},
        "gpu_list": {"type": "array", "items": {"type": "object"}},
        "boot_config": {"type": "object"},
        "guest_customization": {"type": "object"}
      }
    }
  }
}`

const awsVMSchema = `{
  "type": "object",
  "required": ["resources"],
  "properties": {
    "type": {"type": "string"},
    "name": {"type": "string"},
    "resources": {
      "type": "object",
      "required": ["instance_type", "region"],
      "properties": {
        "instance_type": {"type": "string"},
        "region": {"type": "string"},
        "availability_zone": {"type": "string"},
        "image_id": {"type": "string"},
        "key_name": {"type": "string"},
        "security_group_list": {"type": "array"},
        "subnet_id": {"type": "string"},
        "block_device_map": {"type": "object"},
        "tag_list": {"type": "array", "items": {"type": "object"}}
      }
    }
  }
}`

const vmwareVMSchema = `{
  "type": "object",
  "required": ["resources"],
  "properties": {
    "type": {"type": "string"},
    "name": {"type": "string"},
    "resources": {
      "type": "object",
      "required": ["num_sockets", "memory_size_mib"],
      "properties": {
        "num_sockets": {"type": "integer", "minimum": 1},
        "num_vcpus_per_socket": {"type": "integer", "minimum": 1},
        "memory_size_mib": {"type": "integer", "minimum": 1},
        "template": {"type": "string"},
        "datastore": {"type": "string"},
        "host": {"type": "string"},
        "nic_list": {"type": "array", "items": {"type": "object"}},
        "disk_list": {"type": "array", "items": {"type": "object"}},
        "guest_customization": {"type": "object"}
      }
    }
  }
}`

const gcpVMSchema = `{
  "type": "object",
  "required": ["resources"],
  "properties": {
    "type": {"type": "string"},
    "name": {"type": "string"},
    "resources": {
      "type": "object",
      "required": ["machineType", "zone"],
      "properties": {
        "machineType": {"type": "string"},
        "zone": {"type": "string"},
        "disks": {"type": "array", "items": {"type": "object"}},
        "networkInterfaces": {"type": "array", "items": {"type": "object"}},
        "metadata": {"type": "object"},
        "serviceAccounts": {"type": "array", "items": {"type": "object"}}
      }
    }
  }
}`

const azureVMSchema = `{
  "type": "object",
  "required": ["resources"],
  "properties": {
    "type": {"type": "string"},
    "name": {"type": "string"},
    "resources": {
      "type": "object",
      "required": ["resource_group", "location"],
      "properties": {
        "resource_group": {"type": "string"},
        "location": {"type": "string"},
        "availability_set_id": {"type": "string"},
        "hw_profile": {"type": "object"},
        "os_profile": {"type": "object"},
        "storage_profile": {"type": "object"},
        "nw_profile": {"type": "object"},
        "tag_list": {"type": "array", "items": {"type": "object"}}
      }
    }
  }
}`

const existingVMSchema = `{
  "type": "object",
  "required": ["address"],
  "properties": {
    "type": {"type": "string"},
    "name": {"type": "string"},
    "address": {"type": "string", "minLength": 1}
  }
}`
