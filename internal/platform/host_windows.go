package platform

// Host is the platform tag of the running binary.
const Host = Win
