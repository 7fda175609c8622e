package model

import (
	"fmt"
	"math"
)

// PendingCount counts tasks that are not completed.
func PendingCount(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

// PendingLabel renders the "N tasks left" summary.
func PendingLabel(tasks []Task) string {
	n := PendingCount(tasks)
	if n == 1 {
		return "1 task left"
	}
	return fmt.Sprintf("%d tasks left", n)
}

// CartTotal sums price × qty over the cart, rounded to cents.
func CartTotal(cart []CartEntry) float64 {
	total := 0.0
	for _, e := range cart {
		total += e.Price * float64(e.Qty)
	}
	return math.Round(total*100) / 100
}

// BadgeCount sums quantities over the cart.
func BadgeCount(cart []CartEntry) int {
	n := 0
	for _, e := range cart {
		n += e.Qty
	}
	return n
}

// FormatMoney renders an amount as dollars with two decimals.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}
