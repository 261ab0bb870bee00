// Package parse turns one line of free text into a ledger transaction.
//
// Two grammars are accepted, tried in a fixed order:
//
//  1. amount-first: an optional sign, digits, whitespace, then the label.
//     "-3000 rent" -> label "rent", amount -3000. A missing sign means "+".
//  2. label-first: a label, then a mandatory sign glued to digits at the
//     end of the line. "rent -3000" and "pay bills -3000" both parse.
//
// The amount-first pattern is anchored and takes priority: when it
// matches, label-first is never consulted. A line like "100 200 things"
// therefore always parses as amount 100 with label "200 things". Lines
// matching neither grammar yield ErrNoTransaction; parsing is total and
// never panics.
package parse

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// Kind tags which grammar produced a transaction.
type Kind int

const (
	Rejected Kind = iota
	AmountFirst
	LabelFirst
)

func (k Kind) String() string {
	switch k {
	case AmountFirst:
		return "amount-first"
	case LabelFirst:
		return "label-first"
	default:
		return "rejected"
	}
}

// Transaction is a parsed (label, signed amount) pair.
type Transaction struct {
	Label  string
	Amount int64
	Kind   Kind
}

// ErrNoTransaction signals that the input matches neither grammar. The
// caller is expected to show a format-help message, not to fail.
var ErrNoTransaction = errors.New("no transaction found")

var (
	amountFirstRe = regexp.MustCompile(`^\s*([+-]?)(\d+)\s+(\S.*)$`)
	labelFirstRe  = regexp.MustCompile(`^\s*(\S.*?)\s*([+-])(\d+)\s*$`)
)

// Parse converts one line of text into a Transaction. The sign is applied
// exactly once; digits that overflow int64 reject the whole line.
func Parse(line string) (Transaction, error) {
	if m := amountFirstRe.FindStringSubmatch(line); m != nil {
		amount, err := signedAmount(m[1], m[2])
		if err != nil {
			return Transaction{Kind: Rejected}, ErrNoTransaction
		}
		return Transaction{
			Label:  strings.TrimSpace(m[3]),
			Amount: amount,
			Kind:   AmountFirst,
		}, nil
	}

	if m := labelFirstRe.FindStringSubmatch(line); m != nil {
		amount, err := signedAmount(m[2], m[3])
		if err != nil {
			return Transaction{Kind: Rejected}, ErrNoTransaction
		}
		return Transaction{
			Label:  strings.TrimSpace(m[1]),
			Amount: amount,
			Kind:   LabelFirst,
		}, nil
	}

	return Transaction{Kind: Rejected}, ErrNoTransaction
}

func signedAmount(sign, digits string) (int64, error) {
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, err
	}
	if sign == "-" {
		return -v, nil
	}
	return v, nil
}
