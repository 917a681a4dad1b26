package models

// ConnectorRequest is the body of POST /api/connection/connector.
type ConnectorRequest struct {
	Connector ConnectorName `json:"connector"`
}

// TxRequest is the body of POST /api/connection/tx. Nil fields are left
// unchanged.
type TxRequest struct {
	// Hash is the hash of the last submitted transaction.
	Hash *string `json:"hash,omitempty"`

	// State is a [TransactionStep] name such as "transactionSubmitted".
	State *string `json:"state,omitempty"`
}

// ConnectionResponse is the bridge view of the connection.
type ConnectionResponse struct {
	// State is the readiness state of the connection machine.
	State string `json:"state"`
	Ready bool   `json:"ready"`

	Connector    ConnectorName `json:"connector,omitempty"`
	Account      string        `json:"account,omitempty"`
	RawAccount   string        `json:"rawAccount,omitempty"`
	NetworkID    uint64        `json:"networkId,omitempty"`
	RawNetworkID uint64        `json:"rawNetworkId,omitempty"`
	Network      string        `json:"network,omitempty"`
	Relay        bool          `json:"relay"`
	ProviderURL  string        `json:"providerUrl,omitempty"`

	Proxy    *ProxyService `json:"proxy,omitempty"`
	Balances *Balances     `json:"balances,omitempty"`

	TxHash  string `json:"txHash,omitempty"`
	TxState string `json:"txState,omitempty"`
}
