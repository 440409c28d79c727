package main

import (
	"fmt"
	"strings"

	"github.com/sourceplane/blendsubmit/internal/model"
)

// LayerInfo holds what a layer renders and which settings it shares
type LayerInfo struct {
	Name         string
	SettingsName string
	SharedWith   []string // other layers using the same settings
	Renderer     string
	FrameRange   string
	Scene        string
	GroupLabel   string
	Cameras      []string
	OutputDirs   []string
	OutputPrefix string
	Resolution   model.Resolution
}

// ExtractLayerInfo builds LayerInfo for every layer in submission order
func ExtractLayerInfo(sub *model.Submission) []LayerInfo {
	settingsNames := make(map[*model.LayerSettings]string, len(sub.LayerSettings))
	for name, ls := range sub.LayerSettings {
		settingsNames[ls] = name
	}

	users := make(map[*model.LayerSettings][]string)
	for _, layer := range sub.ResolvedLayers {
		users[layer.Settings] = append(users[layer.Settings], layer.Name)
	}

	infos := make([]LayerInfo, 0, len(sub.ResolvedLayers))
	for _, layer := range sub.ResolvedLayers {
		ls := layer.Settings

		var shared []string
		for _, other := range users[ls] {
			if other != layer.Name {
				shared = append(shared, other)
			}
		}

		infos = append(infos, LayerInfo{
			Name:         layer.Name,
			SettingsName: settingsNames[ls],
			SharedWith:   shared,
			Renderer:     ls.RendererName,
			FrameRange:   ls.FrameRange,
			Scene:        ls.SceneName,
			GroupLabel:   ls.UIGroupLabel,
			Cameras:      ls.RenderableCameraNames,
			OutputDirs:   ls.OutputDirectories,
			OutputPrefix: ls.OutputFilePrefix,
			Resolution:   ls.ImageResolution,
		})
	}

	return infos
}

// PrintShortFormat prints layer info in short format
func PrintShortFormat(info LayerInfo) {
	fmt.Printf("%-20s  %-10s  %-10s  %s\n", info.Name, info.Renderer, info.FrameRange, info.SettingsName)
}

// PrintLongFormat prints layer info in long format
func PrintLongFormat(info LayerInfo) {
	fmt.Printf("\n━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	fmt.Printf("Layer: %s\n", info.Name)
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	fmt.Printf("Settings:       %s\n", info.SettingsName)
	if len(info.SharedWith) > 0 {
		fmt.Printf("  Shared with:  %s\n", strings.Join(info.SharedWith, ", "))
	}
	fmt.Printf("Renderer:       %s\n", info.Renderer)
	fmt.Printf("Scene:          %s\n", info.Scene)
	fmt.Printf("Frames:         %s\n", info.FrameRange)
	fmt.Printf("Group:          %s\n", info.GroupLabel)
	fmt.Printf("Resolution:     %dx%d\n", info.Resolution.Width, info.Resolution.Height)
	fmt.Printf("Output prefix:  %s\n", info.OutputPrefix)

	if len(info.Cameras) > 0 {
		fmt.Printf("Cameras:\n")
		for _, cam := range info.Cameras {
			fmt.Printf("  • %s\n", cam)
		}
	}
	if len(info.OutputDirs) > 0 {
		fmt.Printf("Output directories:\n")
		for _, dir := range info.OutputDirs {
			fmt.Printf("  • %s\n", dir)
		}
	}
	fmt.Printf("\n")
}
