package models

// NetworkInfo holds the result of pinging a remote host
type NetworkInfo struct {
	Host       string  `json:"host"`
	Reachable  bool    `json:"reachable"`
	PacketLoss float64 `json:"packet_loss"`
	AvgRTTms   float64 `json:"avg_rtt_ms"`
	Error      string  `json:"error,omitempty"`
}

// ContainerInfo holds Docker container details
type ContainerInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Image   string `json:"image"`
	Status  string `json:"status"`
	State   string `json:"state"`
	Created int64  `json:"created"`
}
