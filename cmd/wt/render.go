package main

import (
	"path/filepath"
	"strings"

	"github.com/vanderheijden86/wordtree/pkg/cloud"
	"github.com/vanderheijden86/wordtree/pkg/expansion"
	"github.com/vanderheijden86/wordtree/pkg/model"
	"github.com/vanderheijden86/wordtree/pkg/scene"
	"github.com/vanderheijden86/wordtree/pkg/treelayout"
)

// Static tree renders use a landscape container; the geometry minimums
// grow it further for large trees.
const treeContainerHeight = 1000.0

func (a *app) normalizeOptions() cloud.NormalizeOptions {
	return cloud.NormalizeOptions{
		Floor:      a.cfg.Cloud.Floor,
		Limit:      a.cfg.Cloud.Limit,
		Width:      a.cfg.Cloud.Width,
		Fullscreen: a.cfg.Tree.Fullscreen,
	}
}

func (a *app) cloudLayout(entries []model.FrequencyEntry) cloud.Layout {
	sized := cloud.Normalize(entries, a.normalizeOptions())
	return cloud.LayoutWords(sized, cloud.LayoutOptions{
		Width:      a.cfg.Cloud.Width,
		Padding:    a.cfg.Cloud.Padding,
		Fullscreen: a.cfg.Tree.Fullscreen,
	})
}

// treeLayout lays out root with every node down to depth levels expanded.
func (a *app) treeLayout(root *model.TreeNode, depth int) treelayout.TreeLayout {
	set := expansion.ExpandToDepth(root, depth)
	container := treelayout.Size{Width: a.cfg.Cloud.Width, Height: treeContainerHeight}
	return treelayout.Layout(root, set, container, a.cfg.Tree.Fullscreen)
}

func (a *app) treeScene(root *model.TreeNode, depth int) scene.Scene {
	return scene.FromTree(a.treeLayout(root, depth))
}

// outputPath resolves where a render goes: an explicit path wins, else
// name inside the configured output directory.
func (a *app) outputPath(explicit, name string) string {
	if explicit != "" {
		return explicit
	}
	return filepath.Join(a.cfg.Output.Dir, name)
}

// formatFor picks the output format: the flag, else the path's extension,
// else the configured default.
func (a *app) formatFor(path, flag string) string {
	if flag != "" || filepath.Ext(path) != "" {
		return flag
	}
	return a.cfg.Output.Format
}

// fileName turns a word into a safe file name stem.
func fileName(word string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, word)
}
