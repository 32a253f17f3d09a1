package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/argo-analyst/internal/types"
)

// DataGenerator generates realistic daily OHLCV series for tests.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator creates a new DataGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how market data is generated.
type GeneratorConfig struct {
	// Code is the stock code (e.g., "sh.600000")
	Code string
	// StartDate is the date of the first bar
	StartDate time.Time
	// Interval is the duration between each bar
	Interval time.Duration
	// Count is the number of bars to generate
	Count int
	// InitialPrice is the starting price
	InitialPrice float64
	// Volatility controls price movement (0.02 = 2% typical daily volatility)
	Volatility float64
	// Trend is the drift factor (-0.01 to 0.01 for bearish to bullish)
	Trend float64
	// VolumeBase is the average volume per bar
	VolumeBase float64
	// VolumeVariance is the variance in volume (0.0 to 1.0)
	VolumeVariance float64
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Code:           "sh.600000",
		StartDate:      time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Interval:       24 * time.Hour,
		Count:          250,
		InitialPrice:   10.0,
		Volatility:     0.02,
		Trend:          0.0,
		VolumeBase:     1_000_000,
		VolumeVariance: 0.3,
	}
}

// Generate creates a TimeSeries following a geometric Brownian motion model.
func (g *DataGenerator) Generate(config GeneratorConfig) types.TimeSeries {
	bars := make([]types.Bar, config.Count)
	currentPrice := config.InitialPrice
	currentDate := config.StartDate

	for i := 0; i < config.Count; i++ {
		open := currentPrice

		// Box-Muller transform for a normal draw
		u1 := 1 - g.rng.Float64()
		u2 := g.rng.Float64()
		z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

		priceChange := config.Volatility * z
		drift := config.Trend / float64(config.Count)

		close := open * (1 + priceChange + drift)
		if close <= 0 {
			close = open * 0.99
		}

		highExtension := g.rng.Float64() * config.Volatility * open * 0.5
		lowExtension := g.rng.Float64() * config.Volatility * open * 0.5

		high := math.Max(open, close) + highExtension
		low := math.Min(open, close) - lowExtension
		if low <= 0 {
			low = math.Min(open, close) * 0.99
		}

		volumeVariation := 1.0 + (g.rng.Float64()*2-1)*config.VolumeVariance
		volume := config.VolumeBase * volumeVariation
		if volume < 0 {
			volume = config.VolumeBase * 0.1
		}

		bars[i] = types.Bar{
			Date:   currentDate,
			Open:   roundToDecimals(open, 4),
			High:   roundToDecimals(high, 4),
			Low:    roundToDecimals(low, 4),
			Close:  roundToDecimals(close, 4),
			Volume: math.Round(volume),
		}

		currentPrice = close
		currentDate = currentDate.Add(config.Interval)
	}

	return types.TimeSeries{Code: config.Code, Bars: bars}
}

// GenerateMultiCode generates one series per code.
func (g *DataGenerator) GenerateMultiCode(codes []string, baseConfig GeneratorConfig) []types.TimeSeries {
	all := make([]types.TimeSeries, 0, len(codes))

	for _, code := range codes {
		config := baseConfig
		config.Code = code
		// Vary initial price and volatility slightly per code
		config.InitialPrice = baseConfig.InitialPrice * (0.8 + g.rng.Float64()*0.4)
		config.Volatility = baseConfig.Volatility * (0.8 + g.rng.Float64()*0.4)

		all = append(all, g.Generate(config))
	}

	return all
}

// RandomWalk returns count daily bars for code with the default settings and seed 42.
func RandomWalk(code string, count int) types.TimeSeries {
	gen := NewDataGenerator(42)
	config := DefaultConfig()
	config.Code = code
	config.Count = count

	return gen.Generate(config)
}

// Ascending returns count bars whose close rises by one every day starting at start.
// Open equals close, high is close+0.5 and low is close-0.5.
func Ascending(code string, count int, start float64) types.TimeSeries {
	bars := make([]types.Bar, count)
	date := DefaultConfig().StartDate

	for i := range bars {
		c := start + float64(i)
		bars[i] = types.Bar{Date: date.AddDate(0, 0, i), Open: c, High: c + 0.5, Low: c - 0.5, Close: c, Volume: 1000 + float64(i)}
	}

	return types.TimeSeries{Code: code, Bars: bars}
}

// roundToDecimals rounds a float64 to the specified number of decimal places.
func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))

	return math.Round(val*pow) / pow
}
