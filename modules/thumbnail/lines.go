package thumbnail

import "strings"

// SplitLines - 키워드를 최대 3줄로 나눔
//
// 공백 하나 단위로 자르고 빈 토큰도 단어로 센다. 3단어 이상이면
// 줄당 ceil(n/3) 단어씩 앞에서부터 채우므로 3번째 줄이 비거나
// 나머지를 모두 떠안을 수 있다.
func SplitLines(keyword string) [3]string {
	trimmed := strings.TrimSpace(keyword)
	words := strings.Split(trimmed, " ")

	switch len(words) {
	case 1:
		return [3]string{trimmed, "", ""}
	case 2:
		return [3]string{words[0], words[1], ""}
	}

	perLine := (len(words) + 2) / 3
	return [3]string{
		strings.Join(words[:perLine], " "),
		strings.Join(words[perLine:perLine*2], " "),
		strings.Join(words[perLine*2:], " "),
	}
}
