package common

import "math/rand/v2"

// 默认名字词库
var (
	adjectives = []string{
		"Swift", "Lucky", "Silent", "Brave", "Clever",
		"Rapid", "Calm", "Bold", "Sly", "Quick",
		"Mighty", "Tiny", "Shiny", "Cosmic", "Neon",
	}

	pieces = []string{
		"Tetro", "Block", "Brick", "Stack", "Tile",
		"Line", "Cube", "Piece", "Drop", "Grid",
	}
)

// SuggestName 生成一个默认名字，不含空白且不超过 20 个字符
func SuggestName() string {
	return adjectives[rand.IntN(len(adjectives))] + pieces[rand.IntN(len(pieces))]
}
