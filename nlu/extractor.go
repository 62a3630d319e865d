// Package nlu implements the voice-command understanding core: extracting a
// structured intent from a transcribed utterance and composing the
// conversational response for it. Utterances may be English, Hindi
// (transliterated or Devanagari), or code-switched mixes of both.
package nlu

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kisansetu/kisan-voice-backend/types"
)

// actionGroup maps a set of trigger keywords to an action. Groups are
// evaluated in order with first-match-wins, so an utterance containing both
// "sell" and "price" classifies as a listing creation.
type actionGroup struct {
	keywords []string
	action   types.VoiceAction
}

// actionTable order is behavior, not style. Do not reorder.
var actionTable = []actionGroup{
	{[]string{"sell", "bech", "बेच"}, types.ActionCreateListing},
	{[]string{"buy", "kharid", "खरीद"}, types.ActionSearchListings},
	{[]string{"order", "status"}, types.ActionCheckOrders},
	{[]string{"price", "rate", "bhav", "भाव"}, types.ActionCheckPrices},
}

// cropPattern pairs a regex over English, transliterated Hindi and Devanagari
// variants with the canonical crop name. The table is scanned top to bottom
// and the first entry matching anywhere in the text wins; table order, not
// sentence order, breaks ties between multiple crop mentions.
type cropPattern struct {
	re   *regexp.Regexp
	crop string
}

var cropTable = []cropPattern{
	{regexp.MustCompile(`(?i)tomato|tamatar|टमाटर`), "tomato"},
	{regexp.MustCompile(`(?i)potato|aloo|आलू`), "potato"},
	{regexp.MustCompile(`(?i)onion|pyaz|प्याज`), "onion"},
	{regexp.MustCompile(`(?i)rice|chawal|चावल`), "rice"},
	{regexp.MustCompile(`(?i)wheat|gehu|गेहूं`), "wheat"},
	{regexp.MustCompile(`(?i)mango|aam|आम`), "mango"},
}

// Integer magnitudes only; decimals and written-out numbers are not supported.
var (
	quantityRe = regexp.MustCompile(`(?i)(\d+)\s*(kg|kilo|quintal|ton|किलो|क्विंटल)`)
	priceRe    = regexp.MustCompile(`(?i)(\d+)\s*(?:rupees|rs|₹|रुपये)`)
)

// Extract derives a structured intent from a transcribed utterance. It is a
// pure function: deterministic, side-effect free, and it never fails — when
// nothing matches it returns an intent with ActionUnknown and no entities.
// Entity extraction always runs, regardless of the classified action.
func Extract(text string) types.ExtractedIntent {
	intent := types.ExtractedIntent{Action: types.ActionUnknown}

	lower := strings.ToLower(text)
	for _, group := range actionTable {
		if containsAny(lower, group.keywords) {
			intent.Action = group.action
			break
		}
	}

	// Crop matching runs over the original text: the patterns are
	// case-insensitive anyway, and Devanagari has no case to fold.
	for _, entry := range cropTable {
		if entry.re.MatchString(text) {
			intent.CropType = entry.crop
			break
		}
	}

	if m := quantityRe.FindStringSubmatch(text); m != nil {
		if qty, err := strconv.Atoi(m[1]); err == nil && qty > 0 {
			intent.Quantity = types.IntPtr(qty)
			intent.Unit = strings.ToLower(m[2])
		}
	}

	if m := priceRe.FindStringSubmatch(text); m != nil {
		if price, err := strconv.Atoi(m[1]); err == nil && price > 0 {
			intent.Price = types.IntPtr(price)
		}
	}

	return intent
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
