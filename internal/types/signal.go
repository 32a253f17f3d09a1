package types

import (
	"sort"

	"github.com/moznion/go-optional"
)

// SignalName identifies one of the derived trading signals.
type SignalName string

const (
	SignalMACD SignalName = "MACD"
	SignalRSI  SignalName = "RSI"
	SignalBB   SignalName = "BB"
	SignalKDJ  SignalName = "KDJ"
	SignalCCI  SignalName = "CCI"
	SignalDMI  SignalName = "DMI"
)

// AllSignals lists every signal in derivation order.
var AllSignals = []SignalName{SignalMACD, SignalRSI, SignalBB, SignalKDJ, SignalCCI, SignalDMI}

// SignalLabel is a categorical label from a fixed vocabulary.
type SignalLabel string

const (
	SignalLabelBuy              SignalLabel = "buy"
	SignalLabelSell             SignalLabel = "sell"
	SignalLabelOverbought       SignalLabel = "overbought"
	SignalLabelOversold         SignalLabel = "oversold"
	SignalLabelNeutral          SignalLabel = "neutral"
	SignalLabelGoldenCross      SignalLabel = "golden_cross"
	SignalLabelDeadCross        SignalLabel = "dead_cross"
	SignalLabelStrongUptrend    SignalLabel = "strong_uptrend"
	SignalLabelStrongDowntrend  SignalLabel = "strong_downtrend"
	SignalLabelConsolidating    SignalLabel = "consolidating"
	SignalLabelInsufficientData SignalLabel = "insufficient_data"
)

var localizedLabels = map[SignalLabel]string{
	SignalLabelBuy:              "买入",
	SignalLabelSell:             "卖出",
	SignalLabelOverbought:       "超买",
	SignalLabelOversold:         "超卖",
	SignalLabelNeutral:          "中性",
	SignalLabelGoldenCross:      "金叉",
	SignalLabelDeadCross:        "死叉",
	SignalLabelStrongUptrend:    "强势上涨",
	SignalLabelStrongDowntrend:  "强势下跌",
	SignalLabelConsolidating:    "盘整",
	SignalLabelInsufficientData: "数据不足",
}

// Localized returns the Chinese wording of the label, or the code itself when unknown.
func (l SignalLabel) Localized() string {
	if s, ok := localizedLabels[l]; ok {
		return s
	}

	return string(l)
}

// Valid reports whether the label belongs to the fixed vocabulary.
func (l SignalLabel) Valid() bool {
	_, ok := localizedLabels[l]

	return ok
}

// SignalSummary maps each signal to its label.
type SignalSummary map[SignalName]SignalLabel

// Get returns the label for name if present.
func (s SignalSummary) Get(name SignalName) optional.Option[SignalLabel] {
	label, ok := s[name]
	if !ok {
		return optional.None[SignalLabel]()
	}

	return optional.Some(label)
}

// Names returns the signal names present in the summary, sorted.
func (s SignalSummary) Names() []SignalName {
	names := make([]SignalName, 0, len(s))
	for name := range s {
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	return names
}

// Localized returns a copy of the summary with the Chinese label wording.
func (s SignalSummary) Localized() map[string]string {
	out := make(map[string]string, len(s))
	for name, label := range s {
		out[string(name)] = label.Localized()
	}

	return out
}
