package ws

// Canal único exposto pelo hub
const ChannelLeaderboard = "leaderboard"

// ClientMsg representa uma mensagem recebida do cliente WebSocket
type ClientMsg struct {
	Type    string `json:"type"`    // subscribe | unsubscribe | ping
	Channel string `json:"channel"` // requerido em subscribe/unsubscribe
}

// Update é enviado a todos os clientes inscritos no canal
type Update struct {
	Channel string      `json:"channel"`
	Payload interface{} `json:"payload"`
}
