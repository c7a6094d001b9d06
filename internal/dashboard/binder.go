package dashboard

import (
	"math"
	"math/big"
	"strconv"
	"time"

	"github.com/aquaflow/aquaflow/internal/telemetry"
)

// LastUpdateLayout formats the local render time in the footer.
const LastUpdateLayout = "3:04:05 PM"

// RenderCurrentReading writes a reading into its slots and derives the pump
// badge. It also hides the loading overlay and stamps the local render time.
// Fields absent from the reading leave their slots untouched; their JSON names
// are returned so the caller can report them.
func RenderCurrentReading(s *Slots, r telemetry.CurrentReading, now time.Time) []string {
	if v := r.WaterLevelPercent; v != nil {
		s.WaterLevel = formatNumber(*v) + "%"
		s.MetricLevel = formatNumber(*v) + "%"
		s.Gauge = Gauge{Percent: *v, Set: true}
	}
	if v := r.DistanceCM; v != nil {
		s.DistanceCM = formatNumber(*v) + " cm"
	}
	if v := r.CurrentVolumeLiters; v != nil {
		s.CurrentVolume = formatNumber(*v) + " L"
		s.MetricVolume = formatNumber(*v) + "L"
	}
	if v := r.PumpRuntimeSeconds; v != nil {
		s.PumpRuntime = formatNumber(*v) + "s"
		s.MetricRuntime = formatNumber(*v) + "s"
	}
	if v := r.SessionDuration; v != nil {
		s.SessionDuration = formatNumber(*v) + "s"
	}
	if v := r.PumpStatus; v != nil {
		s.MetricPumpStatus = *v
		s.Badge = pumpBadge(*v)
	}

	s.Loading = false
	s.LastUpdate = "Last update: " + now.Format(LastUpdateLayout)

	return r.MissingFields()
}

// RenderStats writes the session statistics. Null, missing and zero values
// all render as the default, so a measured 0% reads the same as "no data".
func RenderStats(s *Slots, st telemetry.Stats) {
	s.StatMaxLevel = percentOrDefault(st.MaxLevel, formatNumber)
	s.StatMinLevel = percentOrDefault(st.MinLevel, formatNumber)
	s.StatAvgLevel = percentOrDefault(st.AvgLevel, formatOneDecimal)

	if isFalsy(st.TotalRecords) {
		s.StatDataPoints = "0"
	} else {
		s.StatDataPoints = formatNumber(*st.TotalRecords)
	}
}

// pumpBadge derives the badge from the raw pump status.
func pumpBadge(status string) Badge {
	if status == telemetry.PumpOn {
		return Badge{Active: true, Label: BadgeRunning}
	}
	return Badge{Active: false, Label: BadgeIdle}
}

// percentOrDefault formats v with a % suffix, or "0%" when v is falsy.
func percentOrDefault(v *float64, format func(float64) string) string {
	if isFalsy(v) {
		return "0%"
	}
	return format(*v) + "%"
}

// isFalsy reports nil, zero and NaN.
func isFalsy(v *float64) bool {
	return v == nil || *v == 0 || math.IsNaN(*v)
}

// formatNumber prints the shortest decimal that round-trips: 72, 8.2, 55.55.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatOneDecimal rounds the exact binary value of v to one decimal, ties
// away from zero: 72.25 gives 72.3, while 0.35 (stored just below 0.35)
// gives 0.3.
func formatOneDecimal(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}

	sign := ""
	if v < 0 {
		sign, v = "-", -v
	}

	const prec = 128
	tenths := new(big.Float).SetPrec(prec).SetFloat64(v)
	tenths.Mul(tenths, big.NewFloat(10))
	n, _ := tenths.Int(nil)
	frac := new(big.Float).SetPrec(prec).Sub(tenths, new(big.Float).SetPrec(prec).SetInt(n))
	if frac.Cmp(big.NewFloat(0.5)) >= 0 {
		n.Add(n, big.NewInt(1))
	}

	digits := n.String()
	if len(digits) < 2 {
		digits = "0" + digits
	}
	return sign + digits[:len(digits)-1] + "." + digits[len(digits)-1:]
}
