package ws

// ClientMsg representa uma mensagem recebida do cliente WebSocket
// Type: subscribe | unsubscribe | ping
// Sport: obrigatório para subscribe/unsubscribe (ex: "basketball_nba")
type ClientMsg struct {
	Type  string `json:"type"`
	Sport string `json:"sport"`
}

// PicksUpdate é o envelope enviado aos clientes inscritos num sport
type PicksUpdate struct {
	Sport   string      `json:"sport"`
	Payload interface{} `json:"payload"`
}
