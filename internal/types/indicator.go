package types

// IndicatorType identifies an indicator calculator in the registry.
type IndicatorType string

const (
	IndicatorTypeMA             IndicatorType = "ma"
	IndicatorTypeMACD           IndicatorType = "macd"
	IndicatorTypeRSI            IndicatorType = "rsi"
	IndicatorTypeBollingerBands IndicatorType = "bollinger_bands"
	IndicatorTypeKDJ            IndicatorType = "kdj"
	IndicatorTypeCCI            IndicatorType = "cci"
	IndicatorTypeDMI            IndicatorType = "dmi"
	IndicatorTypeOBV            IndicatorType = "obv"
	IndicatorTypeVR             IndicatorType = "vr"
	IndicatorTypeWilliamsR      IndicatorType = "williams_r"
)

// Column is the name of a derived indicator column.
type Column string

const (
	ColumnMA5        Column = "MA5"
	ColumnMA10       Column = "MA10"
	ColumnMA20       Column = "MA20"
	ColumnMA60       Column = "MA60"
	ColumnMACD       Column = "MACD"
	ColumnMACDSignal Column = "MACD_SIGNAL"
	ColumnMACDHist   Column = "MACD_HIST"
	ColumnRSI6       Column = "RSI6"
	ColumnRSI12      Column = "RSI12"
	ColumnRSI24      Column = "RSI24"
	ColumnBBUpper    Column = "BB_UPPER"
	ColumnBBMiddle   Column = "BB_MIDDLE"
	ColumnBBLower    Column = "BB_LOWER"
	ColumnK          Column = "K"
	ColumnD          Column = "D"
	ColumnJ          Column = "J"
	ColumnCCI        Column = "CCI"
	ColumnPlusDI     Column = "PLUS_DI"
	ColumnMinusDI    Column = "MINUS_DI"
	ColumnADX        Column = "ADX"
	ColumnOBV        Column = "OBV"
	ColumnVR         Column = "VR"
	ColumnWILLR      Column = "WILLR"
)

// DefaultColumns lists the columns produced by the default indicator configuration, in order.
var DefaultColumns = []Column{
	ColumnMA5, ColumnMA10, ColumnMA20, ColumnMA60,
	ColumnMACD, ColumnMACDSignal, ColumnMACDHist,
	ColumnRSI6, ColumnRSI12, ColumnRSI24,
	ColumnBBUpper, ColumnBBMiddle, ColumnBBLower,
	ColumnK, ColumnD, ColumnJ,
	ColumnCCI,
	ColumnPlusDI, ColumnMinusDI, ColumnADX,
	ColumnOBV,
	ColumnVR,
	ColumnWILLR,
}

// String returns the column name.
func (c Column) String() string {
	return string(c)
}
