package checkout

// Step is the wizard position. The zero value is not a valid step.
type Step int

const (
	StepCustomizing Step = iota + 1
	StepAddress
	StepPayment
	StepPlaced
)

func (s Step) String() string {
	switch s {
	case StepCustomizing:
		return "customizing"
	case StepAddress:
		return "address"
	case StepPayment:
		return "payment"
	case StepPlaced:
		return "placed"
	}
	return "unknown"
}

func (s Step) Valid() bool {
	return s >= StepCustomizing && s <= StepPlaced
}
