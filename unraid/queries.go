package unraid

// Fixed query documents sent to the Unraid GraphQL API. Each operation
// sends exactly one of these; the only variability is the front-end
// selection flags handled by the builder functions below.

const queryHealthCheck = `
query HealthCheck {
  info {
    machineId
    time
  }
}`

const queryArrayStatus = `
query GetArrayStatus {
  array {
    state
    capacity {
      kilobytes { free used total }
    }
    disks { id name status }
    parities { id name status }
  }
}`

const queryNetworkConfig = `
query GetNetworkConfig {
  network {
    id
    accessUrls { type name ipv4 ipv6 }
  }
}`

const queryRegistrationInfo = `
query GetRegistrationInfo {
  registration {
    id
    type
    keyFile { location }
    state
    expiration
    updateExpiration
  }
}`

const querySharesInfo = `
query GetSharesInfo {
  shares {
    id
    name
    free
    used
    size
    include
    exclude
    cache
    nameOrig
    comment
    allocator
    splitLevel
    floor
    cow
    color
    luksStatus
  }
}`

const queryListVMs = `
query ListVMs {
  vms {
    domains {
      uuid
      name
      state
    }
  }
}`

const queryNotificationsOverview = `
query GetNotificationsOverview {
  notifications {
    overview {
      unread { info warning alert total }
      archive { info warning alert total }
    }
  }
}`

func systemInfoQuery(includeVersions bool) string {
	versions := ""
	if includeVersions {
		versions = "\n    versions { unraid }"
	}
	return `
query GetSystemInfo {
  info {
    os { platform distro release hostname uptime }
    cpu { manufacturer brand cores threads }
    time
    machineId` + versions + `
  }
}`
}

func dockerContainersQuery(includePorts bool) string {
	ports := ""
	if includePorts {
		ports = "\n      ports { privatePort publicPort type }"
	}
	return `
query ListDockerContainers {
  docker {
    containers(skipCache: false) {
      id
      names
      image
      state
      status` + ports + `
    }
  }
}`
}
