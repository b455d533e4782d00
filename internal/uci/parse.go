package uci

import (
	"strconv"
	"strings"
)

// info 行里我们关心的部分
type info struct {
	multiPV   int
	depth     int
	score     int
	scoreUnit string
	pv        []string
}

// parseInfo reads an "info ..." line. "info string" lines and lines without
// a pv are skipped.
func parseInfo(line string) (info, bool) {
	items := strings.Fields(line)
	if len(items) < 2 || items[0] != "info" || items[1] == "string" {
		return info{}, false
	}
	var in info
	for i := 1; i < len(items); i++ {
		switch items[i] {
		case "multipv":
			if i+1 < len(items) {
				i++
				in.multiPV, _ = strconv.Atoi(items[i])
			}
		case "depth":
			if i+1 < len(items) {
				i++
				in.depth, _ = strconv.Atoi(items[i])
			}
		case "score":
			if i+2 < len(items) {
				in.scoreUnit = items[i+1]
				in.score, _ = strconv.Atoi(items[i+2])
				i += 2
			}
		case "pv":
			in.pv = append([]string(nil), items[i+1:]...)
			i = len(items)
		}
	}
	return in, len(in.pv) > 0
}

// parseBestMove reads "bestmove X [ponder Y]".
func parseBestMove(line string) (best, ponder string, ok bool) {
	items := strings.Fields(line)
	if len(items) < 2 || items[0] != "bestmove" {
		return "", "", false
	}
	best = items[1]
	if len(items) >= 4 && items[2] == "ponder" {
		ponder = items[3]
	}
	return best, ponder, true
}

func (in info) matches(best, ponder string) bool {
	if len(in.pv) == 0 || in.pv[0] != best {
		return false
	}
	return ponder == "" || len(in.pv) < 2 || in.pv[1] == ponder
}

// better 判断 in 是否优于 other：杀棋优先，其次更深，同深度取高分
func (in info) better(other *info) bool {
	if other == nil {
		return true
	}
	if in.scoreUnit == "mate" && other.scoreUnit != "mate" {
		return true
	}
	if other.scoreUnit == "mate" && in.scoreUnit != "mate" {
		return false
	}
	if in.depth != other.depth {
		return in.depth > other.depth
	}
	return in.score > other.score
}

// pickInfo selects the info line that best explains the engine's choice.
func pickInfo(infos []info, best, ponder string) *info {
	var sel *info
	for i := range infos {
		if !infos[i].matches(best, ponder) {
			continue
		}
		if infos[i].better(sel) {
			sel = &infos[i]
		}
	}
	return sel
}
