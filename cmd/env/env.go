package env

// Prefix is the prefix of every environment variable read by the commands
const Prefix = "TCBRATES"
