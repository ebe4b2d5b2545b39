package entities

// Street is a betting round
type Street string

const (
	Preflop Street = "preflop"
	Flop    Street = "flop"
	Turn    Street = "turn"
	River   Street = "river"
)

// Streets returns every street in play order
func Streets() []Street {
	return []Street{Preflop, Flop, Turn, River}
}

// String returns the street label
func (s Street) String() string {
	return string(s)
}

// ActionKind names an Action variant
type ActionKind string

const (
	KindCall        ActionKind = "call"
	KindBet         ActionKind = "bet"
	KindRaise       ActionKind = "raise"
	KindCheck       ActionKind = "check"
	KindFold        ActionKind = "fold"
	KindLeave       ActionKind = "leave"
	KindUncalledBet ActionKind = "uncalled_bet"
)

// Action is one player action on a street.
// The set of implementations is closed: Call, Bet, Raise, Check, Fold,
// Leave and UncalledBet.
type Action interface {
	Actor() Player
	Kind() ActionKind
	action()
}

// Call matches the current bet
type Call struct {
	Player Player
	Amount float32
	AllIn  bool
}

// Bet opens the betting on a street
type Bet struct {
	Player Player
	Amount float32
	AllIn  bool
}

// Raise increases the current bet from From to To
type Raise struct {
	Player Player
	From   float32
	To     float32
	AllIn  bool
}

// Check passes without betting
type Check struct {
	Player Player
}

// Fold gives up the hand
type Fold struct {
	Player Player
}

// Leave records a player leaving the table mid-hand
type Leave struct {
	Player Player
}

// UncalledBet is the part of a bet returned because nobody called it
type UncalledBet struct {
	Player Player
	Amount float32
}

func (a Call) Actor() Player        { return a.Player }
func (a Bet) Actor() Player         { return a.Player }
func (a Raise) Actor() Player       { return a.Player }
func (a Check) Actor() Player       { return a.Player }
func (a Fold) Actor() Player        { return a.Player }
func (a Leave) Actor() Player       { return a.Player }
func (a UncalledBet) Actor() Player { return a.Player }

func (Call) Kind() ActionKind        { return KindCall }
func (Bet) Kind() ActionKind         { return KindBet }
func (Raise) Kind() ActionKind       { return KindRaise }
func (Check) Kind() ActionKind       { return KindCheck }
func (Fold) Kind() ActionKind        { return KindFold }
func (Leave) Kind() ActionKind       { return KindLeave }
func (UncalledBet) Kind() ActionKind { return KindUncalledBet }

func (Call) action()        {}
func (Bet) action()         {}
func (Raise) action()       {}
func (Check) action()       {}
func (Fold) action()        {}
func (Leave) action()       {}
func (UncalledBet) action() {}
