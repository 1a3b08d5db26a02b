package entity

// RiskTier classifies how tight a connection is.
type RiskTier string

const (
	RiskSafe     RiskTier = "safe"
	RiskModerate RiskTier = "moderate"
	RiskTight    RiskTier = "tight"
	RiskCritical RiskTier = "critical"
)

// Connection is a detected same-traveler layover between two consecutive
// flights. Derived fresh from the traveler's current flight set; never
// persisted.
type Connection struct {
	FromKey        string   `json:"fromKey"`
	ToKey          string   `json:"toKey"`
	FromIdent      string   `json:"fromIdent"`
	ToIdent        string   `json:"toIdent"`
	Airport        string   `json:"airport"` // layover airport code
	Minutes        int      `json:"minutes"`
	TerminalChange bool     `json:"terminalChange"`
	Risk           RiskTier `json:"risk"`

	// Display context for both legs.
	FromOrigin    string `json:"fromOrigin"`    // where the first leg departs
	ToDestination string `json:"toDestination"` // where the second leg lands
	FromGate      string `json:"fromGate,omitempty"`
	FromTerminal  string `json:"fromTerminal,omitempty"`
	ToGate        string `json:"toGate,omitempty"`
	ToTerminal    string `json:"toTerminal,omitempty"`
}

// Involves reports whether the connection touches the given flight.
func (c *Connection) Involves(flightKey string) bool {
	return c.FromKey == flightKey || c.ToKey == flightKey
}

// ArrivingLegIs reports whether the given flight is the leg that lands at
// the layover airport.
func (c *Connection) ArrivingLegIs(flightKey string) bool {
	return c.FromKey == flightKey
}
