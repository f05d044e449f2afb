package main

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/goplant/pkg/board"
	"github.com/itohio/goplant/pkg/controller"
)

// showSettingsDialog displays a settings dialog with tabs for all configuration options.
func showSettingsDialog(state *appState) {
	tabs := container.NewAppTabs(
		createSerialTab(state),
		createThresholdsTab(state),
		createMockTab(state),
	)

	content := container.NewBorder(nil, nil, nil, nil, tabs)
	d := dialog.NewCustom("Settings", "Close", content, state.window)
	d.Resize(fyne.NewSize(520, 420))
	d.Show()
}

func createSerialTab(state *appState) *container.TabItem {
	ports, err := board.Ports()
	portOptions := []string{}
	portMap := make(map[string]string) // Display name to port name

	if err == nil {
		for _, port := range ports {
			displayName := port.Name
			if port.Description != "" && port.Description != port.Name {
				displayName = fmt.Sprintf("%s (%s)", port.Name, port.Description)
			}
			portOptions = append(portOptions, displayName)
			portMap[displayName] = port.Name
		}
	}

	currentPort := state.cfg.Serial.Port
	currentDisplay := currentPort
	found := false
	for _, opt := range portOptions {
		if portMap[opt] == currentPort {
			currentDisplay = opt
			found = true
			break
		}
	}
	if !found && currentPort != "" {
		portOptions = append(portOptions, currentPort)
		portMap[currentPort] = currentPort
	}

	portSelect := widget.NewSelect(portOptions, nil)
	if currentDisplay != "" {
		portSelect.SetSelected(currentDisplay)
	}

	baudEntry := widget.NewEntry()
	baudEntry.SetText(strconv.Itoa(state.cfg.Serial.BaudRate))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Serial Port", Widget: portSelect},
			{Text: "Baud Rate", Widget: baudEntry},
		},
		OnSubmit: func() {
			if portSelect.Selected != "" {
				port := portMap[portSelect.Selected]
				if port == "" {
					port = portSelect.Selected
				}
				state.cfg.Serial.Port = port
			}
			if baud, err := strconv.Atoi(baudEntry.Text); err == nil && baud > 0 {
				state.cfg.Serial.BaudRate = baud
			}
			state.saveConfig()
		},
	}

	return container.NewTabItem("Serial", form)
}

// createThresholdsTab edits the startup thresholds. When connected, submitting also
// sends them to the controller as operator commands.
func createThresholdsTab(state *appState) *container.TabItem {
	th := &state.cfg.Thresholds

	startEntry := widget.NewEntry()
	startEntry.SetText(formatHM(th.WindowStart))
	endEntry := widget.NewEntry()
	endEntry.SetText(formatHM(th.WindowEnd))

	moistureEntry := widget.NewEntry()
	moistureEntry.SetText(fmt.Sprintf("%.0f", th.Moisture))
	lightEntry := widget.NewEntry()
	lightEntry.SetText(strconv.FormatUint(uint64(th.Light), 10))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Window Start (HH:MM)", Widget: startEntry},
			{Text: "Window End (HH:MM)", Widget: endEntry},
			{Text: "Moisture Level (%)", Widget: moistureEntry},
			{Text: "Alert Light Level (%)", Widget: lightEntry},
		},
		OnSubmit: func() {
			sh, sm, err := parseHM(startEntry.Text)
			if err != nil {
				dialog.ShowError(err, state.window)
				return
			}
			eh, em, err := parseHM(endEntry.Text)
			if err != nil {
				dialog.ShowError(err, state.window)
				return
			}
			moisture, err := strconv.ParseUint(moistureEntry.Text, 10, 32)
			if err != nil {
				dialog.ShowError(fmt.Errorf("invalid moisture level %q", moistureEntry.Text), state.window)
				return
			}
			light, err := strconv.ParseUint(lightEntry.Text, 10, 32)
			if err != nil {
				dialog.ShowError(fmt.Errorf("invalid light level %q", lightEntry.Text), state.window)
				return
			}

			th.WindowStart = controller.ClockSeconds(sh, sm)
			th.WindowEnd = controller.ClockSeconds(eh, em)
			th.Moisture = float32(moisture)
			th.Light = uint32(light)
			state.saveConfig()

			state.send(
				fmt.Sprintf("water %d %d %d %d", sh, sm, eh, em),
				fmt.Sprintf("level %d", moisture),
				fmt.Sprintf("alert %d", light),
			)
		},
	}

	return container.NewTabItem("Thresholds", form)
}

// createMockTab edits the simulated plant. Changes apply to the next simulated session.
func createMockTab(state *appState) *container.TabItem {
	m := &state.cfg.Mock

	reservoirEntry := widget.NewEntry()
	reservoirEntry.SetText(fmt.Sprintf("%.0f", m.ReservoirML))
	flowEntry := widget.NewEntry()
	flowEntry.SetText(fmt.Sprintf("%.1f", m.FlowMLPerSec))
	moistureEntry := widget.NewEntry()
	moistureEntry.SetText(fmt.Sprintf("%.1f", m.Moisture))
	dryRateEntry := widget.NewEntry()
	dryRateEntry.SetText(fmt.Sprintf("%.2f", m.DryRate))
	batteryEntry := widget.NewEntry()
	batteryEntry.SetText(fmt.Sprintf("%.2f", m.Battery))
	timeScaleEntry := widget.NewEntry()
	timeScaleEntry.SetText(strconv.FormatFloat(m.TimeScale, 'f', -1, 64))
	startEntry := widget.NewEntry()
	startEntry.SetText(formatHM(m.StartTime))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Reservoir (mL)", Widget: reservoirEntry},
			{Text: "Pump Flow (mL/s)", Widget: flowEntry},
			{Text: "Soil Moisture (%)", Widget: moistureEntry},
			{Text: "Drying Rate (%/h)", Widget: dryRateEntry},
			{Text: "Battery (V)", Widget: batteryEntry},
			{Text: "Time Scale", Widget: timeScaleEntry},
			{Text: "Start Time (HH:MM)", Widget: startEntry},
		},
		OnSubmit: func() {
			if v, err := strconv.ParseFloat(reservoirEntry.Text, 32); err == nil {
				m.ReservoirML = float32(v)
			}
			if v, err := strconv.ParseFloat(flowEntry.Text, 32); err == nil {
				m.FlowMLPerSec = float32(v)
			}
			if v, err := strconv.ParseFloat(moistureEntry.Text, 32); err == nil {
				m.Moisture = float32(v)
			}
			if v, err := strconv.ParseFloat(dryRateEntry.Text, 32); err == nil {
				m.DryRate = float32(v)
			}
			if v, err := strconv.ParseFloat(batteryEntry.Text, 32); err == nil {
				m.Battery = float32(v)
			}
			if v, err := strconv.ParseFloat(timeScaleEntry.Text, 64); err == nil {
				m.TimeScale = v
			}
			if h, mm, err := parseHM(startEntry.Text); err == nil {
				m.StartTime = controller.ClockSeconds(h, mm)
			}
			state.saveConfig()
		},
	}

	return container.NewTabItem("Mock", form)
}

func formatHM(s uint32) string {
	return fmt.Sprintf("%02d:%02d", s/3600, s/60%60)
}

// parseHM parses HH:MM into hours and minutes.
func parseHM(s string) (uint32, uint32, error) {
	hs, ms, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	h, err := strconv.ParseUint(hs, 10, 32)
	if err != nil || h > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.ParseUint(ms, 10, 32)
	if err != nil || m > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	return uint32(h), uint32(m), nil
}
