package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/merlin-client/internal/connection"
	"github.com/MKhiriev/merlin-client/internal/utils"
	"github.com/MKhiriev/merlin-client/models"
)

// headerView is what the header shows for one connection snapshot.
type headerView struct {
	// Network is the label of the network the connection talks to.
	Network string
	// RelayToggle is set when the network dropdown is offered; RelayTarget
	// is the label of its single item.
	RelayToggle bool
	RelayTarget string

	Connected bool
	Account   string

	// Token is the governance token balance, e.g. "12 OMN".
	Token string
	// Deposit is the native balance with the label of the deposited
	// currency, e.g. "1.50 xDAI".
	Deposit string

	// Connect is the connect button caption; empty while connected.
	Connect string
}

// newHeaderView builds the header for s. connecting is set while the
// connect modal is open.
func newHeaderView(s *connection.Snapshot, connecting bool) headerView {
	var v headerView

	if s == nil {
		v.Network = "-"
		v.Connect = connectCaption(connecting)
		return v
	}

	v.Network = models.NetworkLabel(s.NetworkID)
	if s.Relay {
		v.Network = models.NetworkLabel(models.RelayNetworkID)
	}

	// the legacy network can be relayed unless a Safe host owns the account
	v.RelayToggle = (s.RawNetworkID == models.NetworkMainnet && s.Connector != models.ConnectorSafe) || s.Relay
	if v.RelayToggle {
		v.RelayTarget = models.NetworkLabel(models.RelayNetworkID)
		if s.Relay {
			v.RelayTarget = models.NetworkLabel(models.NetworkMainnet)
		}
	}

	if !s.Connected() {
		v.Connect = connectCaption(connecting)
		return v
	}

	v.Connected = true
	v.Account = s.Account

	symbol := models.TokenOMN.Symbol
	if s.Relay {
		symbol = models.TokenXOMN.Symbol
	}
	amount := "0"
	if tb, ok := s.Balances.Token(symbol); ok && tb.Balance != nil {
		amount = utils.FormatUnits(tb.Balance, tb.Decimals, 0)
	}
	v.Token = amount + " " + symbol

	v.Deposit = nativeOrZero(s.Balances) + " " + depositSymbol(s)

	return v
}

func connectCaption(connecting bool) string {
	if connecting {
		return "Connecting"
	}
	return "Connect"
}

// depositSymbol is DAI for relayed connections and the native currency of
// the wallet network otherwise.
func depositSymbol(s *connection.Snapshot) string {
	if s.Relay {
		return "DAI"
	}
	return models.NativeSymbol(s.RawNetworkID)
}

func nativeOrZero(b models.Balances) string {
	if b.FormattedNative == "" {
		return "0"
	}
	return b.FormattedNative
}

func (v headerView) render(state connection.State) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Merlin"))
	b.WriteString("  ")
	b.WriteString(activeStyle.Render("● "))
	b.WriteString(v.Network)
	if v.RelayToggle {
		b.WriteString(helpStyle.Render(fmt.Sprintf(" (r: %s)", v.RelayTarget)))
	}

	b.WriteString("   ")
	switch {
	case v.Connected:
		b.WriteString(v.Token)
		b.WriteString("   ")
		b.WriteString(v.Deposit)
		b.WriteString("   ")
		b.WriteString(shortAddress(v.Account))
	case state != connection.Ready && state != connection.Uninitialized:
		b.WriteString(helpStyle.Render(state.String() + "..."))
	default:
		b.WriteString("[" + v.Connect + "]")
	}

	return headerStyle.Render(b.String())
}

func shortAddress(address string) string {
	if len(address) <= 12 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}
