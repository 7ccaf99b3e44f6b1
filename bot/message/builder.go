// Package message models the conversational turns the bot can send and the
// builders that produce them. A Message is provider-agnostic; the LINE
// gateway renders choices as native quick-reply buttons.
package message

import (
	"fmt"

	"github.com/kaodiag/facebot/bot/quiz"
)

// ChoiceKind distinguishes in-conversation postbacks from link-out actions.
type ChoiceKind int

const (
	// ChoicePostback sends an opaque payload back through the webhook.
	ChoicePostback ChoiceKind = iota
	// ChoiceURI opens an external link.
	ChoiceURI
)

// Choice is a single selectable quick-reply button.
type Choice struct {
	Kind  ChoiceKind
	Label string
	// Data carries the postback payload for ChoicePostback.
	Data string
	// URI carries the external link for ChoiceURI.
	URI string
}

// Message is one presentable conversational turn: body text plus an
// ordered sequence of selectable choices.
type Message struct {
	Text    string
	Choices []Choice
}

// Postback payload vocabulary. These three shapes are everything the
// dispatcher understands.
const (
	PayloadFacePrefix = "face="
	PayloadLinePrefix = "line="
	PayloadMainMenu   = "action=main_menu"
)

// QuestionOne builds the first quiz question with its three answers.
func QuestionOne() *Message {
	return &Message{
		Text: "Q1. お顔の印象はどちらに近いですか？",
		Choices: []Choice{
			{Kind: ChoicePostback, Label: "子ども顔", Data: PayloadFacePrefix + string(quiz.FaceChild)},
			{Kind: ChoicePostback, Label: "大人顔", Data: PayloadFacePrefix + string(quiz.FaceAdult)},
			{Kind: ChoicePostback, Label: "わからない", Data: PayloadFacePrefix + string(quiz.FaceUnknown)},
		},
	}
}

// QuestionTwo builds the second quiz question with its three answers.
func QuestionTwo() *Message {
	return &Message{
		Text: "Q2. お顔のラインはどちらに近いですか？",
		Choices: []Choice{
			{Kind: ChoicePostback, Label: "曲線的", Data: PayloadLinePrefix + string(quiz.LineCurve)},
			{Kind: ChoicePostback, Label: "直線的", Data: PayloadLinePrefix + string(quiz.LineStraight)},
			{Kind: ChoicePostback, Label: "わからない", Data: PayloadLinePrefix + string(quiz.LineUnknown)},
		},
	}
}

// Result builds the quiz outcome message for a category. When promoURL is
// non-empty a link-out button is appended after the menu button.
func Result(cat quiz.Category, promoURL string) *Message {
	text := fmt.Sprintf(
		"診断結果：あなたは「%s」タイプ！\nキーワードは「%s」です。\nタイプに合わせたメニューをご用意しています♪",
		cat.Name, cat.Keyword,
	)
	choices := []Choice{
		{Kind: ChoicePostback, Label: "メニューを見る", Data: PayloadMainMenu},
	}
	if promoURL != "" {
		choices = append(choices, Choice{Kind: ChoiceURI, Label: "ご予約はこちら", URI: promoURL})
	}
	return &Message{
		Text:    text,
		Choices: choices,
	}
}

// Menu builds the fixed promotional menu message.
func Menu() *Message {
	return &Message{
		Text: "【メニューのご案内】\n" +
			"・似合わせカット ＋ カラー\n" +
			"・顔タイプ別スタイリング提案\n" +
			"・初回限定トリートメント\n\n" +
			"「かんたん診断」と送ると、顔タイプ診断をいつでもやり直せます。",
	}
}
