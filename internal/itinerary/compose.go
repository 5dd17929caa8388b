// Package itinerary assembles the text body of a hiking trip plan: navigation
// links, weather guidance for the chosen date, a gear checklist, and a trail
// report search link. The output is what ends up in the calendar event.
package itinerary

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/doog8889-droid/hiking-helper/internal/forecast"
)

const (
	// rainWarnPct and coldWarnC are fixed advisory thresholds, not tunables.
	rainWarnPct = 30
	coldWarnC   = 10.0

	mapSearchBase   = "https://www.google.com/maps/search/?api=1&query="
	trailSearchBase = "https://hiking.biji.co/index.php?q=%s&node=search"

	unknownClock = "未知"
)

// Request carries the user-confirmed trip fields. Destination is required;
// RouteNote and Notes are optional and simply skipped when empty.
type Request struct {
	Destination string
	RouteNote   string
	Date        time.Time
	Notes       string
}

// MapURL builds the Google Maps navigation link for a destination.
func MapURL(destination string) string {
	return mapSearchBase + url.QueryEscape(destination)
}

// TrailNotesURL builds the hiking.biji.co trail report search link.
func TrailNotesURL(destination string) string {
	return fmt.Sprintf(trailSearchBase, url.QueryEscape(destination))
}

// Compose renders the full itinerary text. It is a pure function of its
// arguments: same inputs, byte-identical output. A nil day routes the weather
// section to the seasonal-advisory branch; the two branches never co-occur.
func Compose(req Request, day *forecast.Day) string {
	divider := "\n" + strings.Repeat("-", 20) + "\n"
	var lines []string

	if req.Notes != "" {
		lines = append(lines, "【📝 行程筆記】", req.Notes, divider)
	}

	lines = append(lines, "📍 Google Maps 導航："+MapURL(req.Destination), divider)

	lines = append(lines, "【目的地】"+req.Destination)
	if req.RouteNote != "" {
		lines = append(lines, "【路線】"+req.RouteNote)
	}

	if day != nil {
		lines = append(lines, forecastSection(day)...)
	} else {
		lines = append(lines, seasonalSection(req.Date.Month())...)
	}

	lines = append(lines,
		"\n【🎒 裝備檢查】",
		"□ 證件 / 入山證 / 離線地圖",
		"□ 頭燈 (含備用電池) ★重要",
		"□ 雨具 / 保暖衣物",
		"□ 行動水 / 行動糧",
	)

	lines = append(lines, "\n🔗 健行筆記搜尋："+TrailNotesURL(req.Destination))

	return strings.Join(lines, "\n")
}

func forecastSection(day *forecast.Day) []string {
	rain := 0
	if day.RainProbability != nil {
		rain = *day.RainProbability
	}

	lines := []string{
		"\n【☀️ 當日天氣預報】",
		"🌡️ 氣溫預測：" + tempOrPlaceholder(day.MinTemp) + "°C ~ " + tempOrPlaceholder(day.MaxTemp) + "°C",
		fmt.Sprintf("☔ 降雨機率：%d%%", rain),
		"🌅 日出日落：" + trailingClock(day.Sunrise) + " / " + trailingClock(day.Sunset),
	}

	if rain >= rainWarnPct {
		lines = append(lines, "⚠️ 降雨機率高，務必攜帶雨衣/雨褲！")
	}
	if day.MinTemp != nil && *day.MinTemp < coldWarnC {
		lines = append(lines, "⚠️ 氣溫較低，請攜帶保暖中層。")
	}

	return lines
}

// seasonalSection covers dates outside the forecast window. The forecast API
// only looks about a week ahead, so further-out dates get climate heuristics
// keyed by month instead of silence.
func seasonalSection(month time.Month) []string {
	lines := []string{
		"\n【☀️ 季節性氣候提醒】",
		"⚠️ 日期較遠，暫無精準預報，請出發前 3 天再次確認。",
	}

	switch month {
	case time.December, time.January, time.February, time.March:
		lines = append(lines, "❄️ 冬季高山可能結冰，建議攜帶冰爪。")
	case time.May, time.June:
		lines = append(lines, "🌧️ 梅雨季節，注意午後雷陣雨。")
	case time.July, time.August, time.September:
		lines = append(lines, "🌪️ 颱風季/夏季，注意防曬與天氣警報。")
	}

	return lines
}

func tempOrPlaceholder(v *float64) string {
	if v == nil {
		return "?"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// trailingClock trims an ISO-ish timestamp ("2024-01-15T06:30") to its HH:MM
// tail. Shorter strings (including the placeholder) pass through as is.
func trailingClock(ts string) string {
	if ts == "" {
		ts = unknownClock
	}
	runes := []rune(ts)
	if len(runes) <= 5 {
		return ts
	}
	return string(runes[len(runes)-5:])
}
