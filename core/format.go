package core

import (
	"fmt"
	"strconv"
	"strings"
)

var (
	onesWords = []string{
		"", "One ", "Two ", "Three ", "Four ", "Five ", "Six ", "Seven ", "Eight ", "Nine ", "Ten ",
		"Eleven ", "Twelve ", "Thirteen ", "Fourteen ", "Fifteen ", "Sixteen ", "Seventeen ", "Eighteen ", "Nineteen ",
	}
	tensWords = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
)

// FormatCurrency renders an amount as Indian Rupees with Indian digit
// grouping; eg. 123456.5 -> "₹1,23,456.50".
func FormatCurrency(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	s := strconv.FormatFloat(amount, 'f', 2, 64)
	parts := strings.SplitN(s, ".", 2)
	return sign + "₹" + groupIndian(parts[0]) + "." + parts[1]
}

// groupIndian inserts Indian-system thousands separators: the last three
// digits form one group, every two digits before that form another.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)
	return strings.Join(groups, ",") + "," + tail
}

// AmountInWords spells out a rupee amount for fee receipts;
// eg. 1500 -> "One Thousand Five Hundred Only".
func AmountInWords(num int) string {
	if num == 0 {
		return "Zero"
	}
	return makeWords(num) + "Only"
}

func makeWords(n int) string {
	switch {
	case n < 20:
		return onesWords[n]
	case n < 100:
		s := tensWords[n/10]
		if n%10 != 0 {
			s += "-" + onesWords[n%10]
		}
		return s
	case n < 1000:
		s := onesWords[n/100] + "Hundred "
		if n%100 != 0 {
			s += "and " + makeWords(n%100)
		}
		return s
	case n < 100000:
		s := makeWords(n/1000) + "Thousand "
		if n%1000 != 0 {
			s += makeWords(n % 1000)
		}
		return s
	default:
		// fallback for very large amounts
		return fmt.Sprintf("%d", n)
	}
}
