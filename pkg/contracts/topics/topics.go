package topics

const (
	// Apostas
	BetSettled = "bet_settled"

	// Contas
	AccountCreated = "account_created"

	// DLQ do worker de auditoria
	BetSettledDLQ = "bet_settled_dlq"
)
