package kafka

// Case event stream topology. Config may override the topic and group;
// these are the deployed defaults.
const (
	TopicCaseEvents            = "safegal.case.events"
	ConsumerGroupCaseProjector = "safegal-case-projector"
)
