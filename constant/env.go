package constant

// Environment variable prefixes used with envconfig
const (
	// ServerEnvPrefix prefixes every license-server variable (LICENSE_DATABASE_URL, ...)
	ServerEnvPrefix = "LICENSE"

	// AgentEnvPrefix prefixes every license-agent variable (AGENT_VALIDATION_URL, ...)
	AgentEnvPrefix = "AGENT"
)

// Store drivers accepted by the license server
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)
