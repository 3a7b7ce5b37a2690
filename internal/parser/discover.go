package parser

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DiscoverLatestDump 在工作目录下找最新的 dump 文件
// 候选范围与模拟端的导出约定一致：
//   - unity/econ_debug_output*.json
//   - unity/debug/econ/ 下任意深度的 *.json
//
// 按修改时间取最新；没有候选时返回 ("", false)。
func DiscoverLatestDump(root string) (string, bool) {
	var candidates []string

	matches, err := filepath.Glob(filepath.Join(root, "unity", "econ_debug_output*.json"))
	if err == nil {
		candidates = append(candidates, matches...)
	}

	debugDir := filepath.Join(root, "unity", "debug", "econ")
	_ = filepath.WalkDir(debugDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".json") {
			candidates = append(candidates, path)
		}
		return nil
	})

	latest := ""
	var latestMod time.Time
	for _, path := range candidates {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		if latest == "" || info.ModTime().After(latestMod) {
			latest = path
			latestMod = info.ModTime()
		}
	}
	if latest == "" {
		return "", false
	}
	return latest, true
}
