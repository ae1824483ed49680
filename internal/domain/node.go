package domain

// NodeInstance represents a local development node process
type NodeInstance struct {
	Command string   `json:"command"`
	Port    string   `json:"port"`
	ChainID string   `json:"chainId,omitempty"`
	Args    []string `json:"args,omitempty"`
	PidFile string   `json:"pidFile"`
	LogFile string   `json:"logFile"`
}

// NodeStatus represents the status of a development node
type NodeStatus struct {
	Running    bool   `json:"running"`
	PID        int    `json:"pid,omitempty"`
	RPCURL     string `json:"rpcUrl,omitempty"`
	LogFile    string `json:"logFile"`
	RPCHealthy bool   `json:"rpcHealthy"`
	ChainID    uint64 `json:"chainId,omitempty"`
	Error      string `json:"error,omitempty"`
}
