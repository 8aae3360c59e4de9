package service

import "github.com/samber/lo"

// focal 기준 앞뒤 n명. 목록 경계에서 잘리며 창을 옮기지 않는다. focal이 없으면 빈 목록
func Neighbors(list []string, focal string, n int) []string {
	i := lo.IndexOf(list, focal)
	if i < 0 {
		return []string{}
	}
	if n < 0 {
		n = 0
	}

	start := i - n
	if start < 0 {
		start = 0
	}
	end := i + n + 1
	if end > len(list) {
		end = len(list)
	}
	return append([]string{}, list[start:end]...)
}

// 이전/다음 username. 양 끝에서는 반대쪽으로 넘어간다.
// focal이 목록에 없으면 next는 첫 번째, prev는 마지막 원소. 빈 목록이면 ok=false
func PrevNext(list []string, focal string) (prev, next string, ok bool) {
	if len(list) == 0 {
		return "", "", false
	}

	i := lo.IndexOf(list, focal)
	if i < 0 {
		return list[len(list)-1], list[0], true
	}

	prev = list[(i-1+len(list))%len(list)]
	next = list[(i+1)%len(list)]
	return prev, next, true
}

// focal 다음의 최대 n명 (순환 없음). focal이 없으면 처음 n명
func After(list []string, focal string, n int) []string {
	if n <= 0 {
		return []string{}
	}
	start := lo.IndexOf(list, focal) + 1
	end := start + n
	if end > len(list) {
		end = len(list)
	}
	return append([]string{}, list[start:end]...)
}

// 1부터 시작하는 페이지. 범위를 벗어난 페이지는 가장 가까운 페이지로 맞춘다
func Paginate[T any](list []T, page, perPage int) (items []T, current, totalPages int) {
	if perPage <= 0 {
		perPage = 1
	}
	totalPages = (len(list) + perPage - 1) / perPage
	if totalPages == 0 {
		return []T{}, 1, 0
	}

	current = page
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	start := (current - 1) * perPage
	end := start + perPage
	if end > len(list) {
		end = len(list)
	}
	return append([]T{}, list[start:end]...), current, totalPages
}

