package parser

import (
	"encoding/json"
	"fmt"
	"os"

	"econwatch/internal/model"
)

// LoadDump 读取并解码一份 dump JSON
// 只有文件不可读和 JSON 语法错误会报错；字段缺失、类型不规范
// 都由 model 的宽容转换兜住，不在这里失败。
func LoadDump(path string) (*model.Dump, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取 dump 文件失败: %w", err)
	}
	return ParseDump(data)
}

// ParseDump 从内存字节解码 dump（上传场景复用）
func ParseDump(data []byte) (*model.Dump, error) {
	var dump model.Dump
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, fmt.Errorf("解析 dump JSON 失败: %w", err)
	}
	return &dump, nil
}
