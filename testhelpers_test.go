package docsite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testSVG = `<?xml version="1.0" encoding="UTF-8"?><svg xmlns="http://www.w3.org/2000/svg" width="32" height="32"><rect width="32" height="32"/></svg>`

const testConfigYAML = `root: docs
title: Polars中文指南
description: polars-python中文指南
icon: ./docs/public/polars.svg
logoText: Polars中文指南
logo:
  light: /polars.svg
  dark: /polars.svg
route:
  cleanUrls: true
themeConfig:
  socialLinks:
    - icon: github
      mode: link
      content: https://github.com/kamiertop/polars-doc
  hideNavbar: auto
  outlineTitle: 目录
  prevPageText: 上一页
  nextPageText: 下一页
  enableContentAnimation: true
  enableScrollToTop: true
  enableAppearanceAnimation: true
  outline: true
  lastUpdated: true
  lastUpdatedText: 上次更新时间
  editLink:
    text: 📝在 GitHub 上编辑此页
    docRepoBaseUrl: https://github.com/kamiertop/polars-doc/tree/main/docs
search:
  codeBlocks: true
markdown:
  showLineNumbers: true
someFutureOption: ignored
`

// writeTree creates files under dir from a path -> content map.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

// newTestProject writes a small documentation project and returns the path
// of its config file.
func newTestProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"docsite.yaml":           testConfigYAML,
		"docs/public/polars.svg": testSVG,
		"docs/index.md":          "---\ntitle: 介绍\n---\n\n# Polars 简介\n\nPolars 是一个快速的 DataFrame 库。\n\n## 特点\n\n多线程。\n",
		"docs/install.md":        "# 安装\n\n```bash\npip install polars\n```\n",
		"docs/guide/index.md":    "# 用户指南\n\n参考 <Link description=\"GitHub\" href=\"https://github.com/pola-rs/polars\" />\n",
		"docs/guide/io.mdx":      "---\norder: 2\n---\nimport Link from '../components/Link'\n\n# 读写数据\n\n```python\ndf = pl.read_csv(\"iris.csv\")\n```\n",
		"docs/guide/expr.md":     "---\norder: 1\n---\n# 表达式\n\n## select\n\n### col\n",
		"docs/.drafts/wip.md":    "# draft\n",
		"docs/public/notes.md":   "# not a page\n",
	})
	return filepath.Join(dir, "docsite.yaml")
}
