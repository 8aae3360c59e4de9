package helper

import (
	"encoding/json"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

// 생년월일 파싱 실패 시 사용하는 기본값
const DefaultBirth = "19700101"

const birthLayout = "20060102"

func ToJSON(data interface{}) json.RawMessage {
	bytes, err := json.Marshal(data)
	if err != nil {
		log.Printf("Failed to marshal data: %v", err)
		return nil
	}
	return json.RawMessage(bytes)
}

// 첫 번째 경로 요소를 추출하고 나머지 경로를 반환하는 함수
func ExtractFirstPath(path string) (string, string) {
	parts := strings.SplitN(path, "/", 3)

	if len(parts) > 1 {
		firstPath := parts[1]
		if len(parts) > 2 {
			return firstPath, "/" + parts[2]
		}
		return firstPath, "/"
	}

	return "", "/"
}

// 문자열을 정수로 바꾸고 [min, max]로 자른다. 변환 실패 시 0에서 시작한다.
func ForceInt(s string, min, max int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		n = 0
	}
	return ClampInt(n, min, max)
}

func ClampInt(n, min, max int) int {
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

// "AskReddit, IamA  t:1990" -> [AskReddit IamA t:1990]
func SrStrToList(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	return lo.Uniq(parts)
}

// YYYYMMDD 생일 기준 만 나이
func AgeFromBirth(birth string, now time.Time) int {
	t, err := time.Parse(birthLayout, birth)
	if err != nil {
		t, _ = time.Parse(birthLayout, DefaultBirth)
	}
	age := now.Year() - t.Year()
	if now.Month() < t.Month() || (now.Month() == t.Month() && now.Day() < t.Day()) {
		age--
	}
	return age
}

// n년 전 날짜. 2월 29일은 2월 28일로 맞춘다.
func YearsAgo(now time.Time, years int) time.Time {
	day := now.Day()
	if now.Month() == time.February && day == 29 {
		day = 28
	}
	return time.Date(now.Year()-years, now.Month(), day, 0, 0, 0, 0, now.Location())
}

// 나이 범위 -> 생년월일 범위 (YYYYMMDD). earliest < birth < latest 로 비교한다.
func DobRange(now time.Time, minAge, maxAge int) (earliest, latest string) {
	earliest = YearsAgo(now, maxAge).Format(birthLayout)
	latest = YearsAgo(now, minAge).Format(birthLayout)
	return earliest, latest
}
