package fixtures

// Tap observes the data of an existing stream without altering it.
type Tap struct {
	streamName string
}

func (Tap) Kind() Kind {
	return KindTap
}

// StreamName is the name of the stream being tapped.
func (t Tap) StreamName() string {
	return t.streamName
}

func (t Tap) DSL() string {
	return "tap:stream:" + t.streamName
}

var _ Source = Tap{}
