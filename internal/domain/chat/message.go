package chat

const (
	BlockSection = "section"
	BlockDivider = "divider"
	BlockContext = "context"

	TextMarkdown = "mrkdwn"

	// MaxBlocks is the chat.postMessage limit; larger payloads fail with invalid_blocks.
	MaxBlocks = 50
)

// Message is a chat.postMessage request body.
type Message struct {
	Channel string  `json:"channel" validate:"required"`
	Text    string  `json:"text,omitempty"`
	Blocks  []Block `json:"blocks" validate:"required,min=1,max=50,dive"`
}

// Block is a Block Kit layout block. Only the fields used by the bot are modelled.
type Block struct {
	Type     string       `json:"type" validate:"required,oneof=section divider context"`
	Text     *TextObject  `json:"text,omitempty"`
	Fields   []TextObject `json:"fields,omitempty" validate:"max=10,dive"`
	Elements []TextObject `json:"elements,omitempty" validate:"max=10,dive"`
}

type TextObject struct {
	Type string `json:"type" validate:"required,oneof=mrkdwn plain_text"`
	Text string `json:"text" validate:"required,max=3000"`
}

func Markdown(text string) TextObject {
	return TextObject{Type: TextMarkdown, Text: text}
}

func Section(text string) Block {
	t := Markdown(text)
	return Block{Type: BlockSection, Text: &t}
}

func SectionFields(fields ...TextObject) Block {
	return Block{Type: BlockSection, Fields: fields}
}

func Context(elements ...TextObject) Block {
	return Block{Type: BlockContext, Elements: elements}
}

func Divider() Block {
	return Block{Type: BlockDivider}
}
