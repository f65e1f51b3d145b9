package grocery

import (
	"fmt"
	"strings"
)

const aislePromptTemplate = `You are organizing a grocery list for shopping at %s.
Group the following ingredients into the store's aisles.

Ingredients:
%s
Respond with ONLY a JSON object mapping each aisle name to an array of ingredient names,
using the ingredient names exactly as given. Example:
{"Produce":["Onion","Carrot"],"Dairy":["Milk"]}`

const instacartPromptTemplate = `Write a shopping request for an Instacart shopper using this exact template:

Please add these items to my Instacart cart:
- <amount> <unit> <name>

If any items are unavailable, suggest alternatives. Prefer organic.

Items:
%s
Reply with the message text only.`

func buildAislePrompt(items []ConsolidatedIngredient, storeName string) string {
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "- %s (%s)\n", item.Name, quantity(item))
	}
	return fmt.Sprintf(aislePromptTemplate, storeName, b.String())
}

func buildInstacartPrompt(items []ConsolidatedIngredient) string {
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "%s: %s\n", item.Name, quantity(item))
	}
	return fmt.Sprintf(instacartPromptTemplate, b.String())
}

// quantity "2 each"；單位空白時只有數量
func quantity(item ConsolidatedIngredient) string {
	if item.Unit == "" {
		return formatAmount(item.TotalAmount)
	}
	return formatAmount(item.TotalAmount) + " " + item.Unit
}
