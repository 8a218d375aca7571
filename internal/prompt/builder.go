package prompt

import (
	"fmt"
	"strings"

	apperrors "github.com/courseforge/courseplan-go/internal/errors"
)

// Education levels with dedicated pedagogical framings. Any other value,
// including absent, yields no level fragment.
const (
	LevelUndergraduate = "undergraduate"
	LevelGraduate      = "graduate"
)

// Fixed template fragments. Tests assert on presence and relative order
// of these domain strings, not on byte-exact prompt text.
const (
	leadSentence = "You are a teaching assistant."

	constraintSentence = "It is critically important that the answer consists " +
		"only of sections and topics and does not include any additional " +
		"information, notes or commentary."

	undergraduateFraming = "You are designing a course program for undergraduate " +
		"students who encounter these topics for the first time. Focus on the " +
		"fundamental concepts."

	graduateFraming = "You are designing a course program for graduate students " +
		"who are already familiar with the basics and are ready for a deeper " +
		"study of the subject."

	fewShotLeadIn = "Here are examples of course structures previously designed " +
		"for this subject:"

	chainOfThoughtScaffold = "Start by analyzing what knowledge, abilities and " +
		"skills students already have before the course begins. Then, for each " +
		"section of the course, explain why you chose these topics and subtopics " +
		"and how they relate to the students' prior knowledge. Include reasoning " +
		"about how each topic prepares students for the topics that follow, and " +
		"justify why after studying one topic students are ready to move on to " +
		"the next. Give examples of assignments or projects that reinforce the " +
		"acquired knowledge and skills. Conclude by explaining how the overall " +
		"course structure serves the educational goals of the subject."

	treeOfThoughtScaffold = "Simulate a situation where 100 experts each create " +
		"a course on this subject, every expert including 5 to 7 topics in their " +
		"program. Your job is to analyze these programs and produce the list of " +
		"essential topics to be mastered. Start by identifying topics that appear " +
		"in at least 5 programs. Consider why experts choose these topics so " +
		"often: they may be foundational or critical for understanding the " +
		"subject. Then analyze how these popular topics relate to each other and " +
		"how excluding the less popular ones affects overall understanding. Based " +
		"on this analysis, propose the final list of topics, explaining how each " +
		"contributes to the educational goals of the course."
)

// Builder accumulates a prompt request and renders it with a single
// terminal Build call. Setters are idempotent and order-independent.
// Build atomically renders the prompt and returns the builder to its
// unconfigured state, so one builder serves exactly one request.
type Builder struct {
	store *ExampleStore

	title      string
	context    string
	keywords   []string
	level      string
	hours      int
	useContext bool
	approach   Approach
}

// NewBuilder creates an unconfigured builder backed by the example store.
func NewBuilder(store *ExampleStore) *Builder {
	b := &Builder{store: store}
	b.reset()
	return b
}

func (b *Builder) reset() {
	b.title = ""
	b.context = ""
	b.keywords = nil
	b.level = ""
	b.hours = 0
	b.useContext = true
	b.approach = ZeroShot
}

// Title sets the course title. Required before Build.
func (b *Builder) Title(title string) *Builder {
	b.title = title
	return b
}

// Context sets the retrieval context. May be empty.
func (b *Builder) Context(context string) *Builder {
	b.context = context
	return b
}

// Keywords sets the instructor-requested topics, in order.
func (b *Builder) Keywords(keywords []string) *Builder {
	if len(keywords) > 0 {
		b.keywords = keywords
	}
	return b
}

// EducationLevel sets the pedagogical level framing.
func (b *Builder) EducationLevel(level string) *Builder {
	b.level = level
	return b
}

// Hours sets the lecture-hour budget.
func (b *Builder) Hours(hours int) *Builder {
	b.hours = hours
	return b
}

// UseContext controls whether retrieval context and keywords are rendered.
func (b *Builder) UseContext(use bool) *Builder {
	b.useContext = use
	return b
}

// ApproachStrategy sets the reasoning approach.
func (b *Builder) ApproachStrategy(approach Approach) *Builder {
	b.approach = approach
	return b
}

// Build renders the prompt and resets the builder. Fails with a
// configuration error when no title is set or the approach is unknown;
// the builder state is preserved on failure so the error can be
// inspected, and reset only on success.
func (b *Builder) Build() (string, error) {
	if b.title == "" {
		return "", apperrors.NewConfigError("title", "title required", apperrors.ErrTitleRequired)
	}

	approachFragment, err := b.approachFragment()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(leadSentence)
	sb.WriteString(" ")
	if b.useContext && b.context != "" {
		fmt.Fprintf(&sb, "Using the information about courses available at the university: %s, ", b.context)
	}
	fmt.Fprintf(&sb, "develop a course structure for the subject «%s».", b.title)

	switch b.level {
	case LevelUndergraduate:
		sb.WriteString(" ")
		sb.WriteString(undergraduateFraming)
	case LevelGraduate:
		sb.WriteString(" ")
		sb.WriteString(graduateFraming)
	}

	if b.hours > 0 {
		fmt.Fprintf(&sb, " The program is planned for %d academic lecture hours. "+
			"Based on this, determine the optimal amount of material to include in the course.", b.hours)
	}

	if b.useContext && len(b.keywords) > 0 {
		fmt.Fprintf(&sb, " The instructor asked to include the following topics: %s.",
			strings.Join(b.keywords, ", "))
	}

	if approachFragment != "" {
		sb.WriteString(" ")
		sb.WriteString(approachFragment)
	}

	sb.WriteString(" ")
	sb.WriteString(constraintSentence)

	b.reset()
	return sb.String(), nil
}

// approachFragment renders the approach-specific fragment.
// The switch is exhaustive over the closed Approach set.
func (b *Builder) approachFragment() (string, error) {
	switch b.approach {
	case ZeroShot:
		return "", nil
	case FewShot:
		examples := b.store.Examples(b.title)
		if len(examples) == 0 {
			return "", nil
		}
		var sb strings.Builder
		sb.WriteString(fewShotLeadIn)
		for i, example := range examples {
			fmt.Fprintf(&sb, " %d. %s", i+1, example)
		}
		return sb.String(), nil
	case ChainOfThought:
		return chainOfThoughtScaffold, nil
	case TreeOfThought:
		return treeOfThoughtScaffold, nil
	default:
		return "", apperrors.NewConfigError("approach",
			fmt.Sprintf("unsupported approach %q", b.approach), apperrors.ErrUnsupportedApproach)
	}
}
