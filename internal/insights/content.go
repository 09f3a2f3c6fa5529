// Package insights serves curated financial tips and quotes, live exchange
// rates, and small text helpers used by the insights endpoints.
package insights

import (
	"regexp"
	"strconv"
)

// Tip is a short piece of financial advice.
type Tip struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Quote is an attributed saying about money.
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

var tips = []Tip{
	{"Start an Emergency Fund", "Build an emergency fund with 3-6 months of expenses. This protects you from unexpected financial hardships."},
	{"Track Your Spending", "Monitor all expenses to understand where your money goes and identify areas to cut back."},
	{"Create a Budget", "Use the 50/30/20 rule: 50% needs, 30% wants, 20% savings and debt repayment."},
	{"Automate Your Savings", "Set up automatic transfers to savings on payday to make saving effortless."},
	{"Reduce Debt", "Prioritize paying off high-interest debt first to save money on interest payments."},
	{"Invest Early", "Start investing in diversified portfolios early to benefit from compound growth."},
}

var quotes = []Quote{
	{"An investment in knowledge pays the best interest.", "Benjamin Franklin"},
	{"Do not save what is left after spending; instead spend what is left after saving.", "Warren Buffett"},
	{"Money is a great servant but a bad master.", "Francis Bacon"},
	{"The best time to plant a tree was 20 years ago. The second best time is now.", "Chinese Proverb"},
	{"Financial peace isn't the acquisition of stuff. It's peace of mind.", "Dave Ramsey"},
}

// Tips returns the curated tips. The slice is a copy.
func Tips() []Tip {
	out := make([]Tip, len(tips))
	copy(out, tips)
	return out
}

// Quotes returns the curated quotes. The slice is a copy.
func Quotes() []Quote {
	out := make([]Quote, len(quotes))
	copy(out, quotes)
	return out
}

var numberPattern = regexp.MustCompile(`-?\d+\.?\d*`)

// ExtractNumbers returns every signed decimal number found in text, in order.
func ExtractNumbers(text string) []float64 {
	matches := numberPattern.FindAllString(text, -1)
	out := make([]float64, 0, len(matches))
	for _, m := range matches {
		v, err := strconv.ParseFloat(m, 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}
