package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/goplant/pkg/config"
	"github.com/itohio/goplant/pkg/controller"
	"github.com/itohio/goplant/pkg/history"
	"github.com/itohio/goplant/pkg/session"
)

func main() {
	var (
		portFlag   = flag.String("p", "", "Serial port override (e.g., COM3 or /dev/ttyACM0)")
		configFlag = flag.String("config", "config.yaml", "Configuration file path")
		mockFlag   = flag.Bool("mock", false, "Talk to an in-process simulated controller instead of a serial port")
	)
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *portFlag != "" {
		cfg.Serial.Port = *portFlag
	}

	application := app.NewWithID("com.itohio.goplant")
	window := application.NewWindow("Plant Watering Console")
	window.Resize(fyne.NewSize(900, 600))
	window.CenterOnScreen()

	state := &appState{
		cfg:        cfg,
		configPath: *configFlag,
		window:     window,
		transcript: newTranscript(),
		status:     widget.NewLabel("Disconnected"),
		trend:      NewTrend(),
		history:    history.New(0),
		useMock:    *mockFlag,
	}

	center := fyne.CanvasObject(state.transcript.scroll)
	if state.useMock {
		split := container.NewVSplit(state.transcript.scroll, state.trend)
		split.Offset = 0.6
		center = split
	}

	content := container.NewBorder(
		createToolbar(state),
		createCommandBar(state),
		nil,
		nil,
		center,
	)

	window.SetContent(content)
	window.SetOnClosed(func() {
		state.disconnect()
	})
	window.ShowAndRun()
}

// appState holds the application state. Fields are only touched on the main thread.
type appState struct {
	cfg        *config.Config
	configPath string
	window     fyne.Window
	transcript *transcript
	status     *widget.Label
	trend      *TrendWidget
	history    *history.History
	connectBtn *widget.Button
	actions    []*widget.Button // Enabled while connected
	useMock    bool

	session    *session.Session
	stopStatus chan struct{}
}

// createToolbar creates the Connect and Settings buttons and the quick commands.
func createToolbar(state *appState) fyne.CanvasObject {
	state.connectBtn = widget.NewButtonWithIcon("Connect", theme.LoginIcon(), func() {
		handleConnect(state)
	})

	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		showSettingsDialog(state)
	})

	clearBtn := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		state.transcript.Clear()
	})

	statusBtn := widget.NewButtonWithIcon("Status", theme.InfoIcon(), func() {
		state.send("status")
	})
	pumpOnBtn := widget.NewButtonWithIcon("Pump On", theme.MediaPlayIcon(), func() {
		state.send("pump on")
	})
	pumpOffBtn := widget.NewButtonWithIcon("Pump Off", theme.MediaStopIcon(), func() {
		state.send("pump off")
	})
	syncBtn := widget.NewButtonWithIcon("Sync Clock", theme.HistoryIcon(), func() {
		now := time.Now()
		state.send(fmt.Sprintf("time %d %d", now.Hour(), now.Minute()))
	})

	state.actions = []*widget.Button{statusBtn, pumpOnBtn, pumpOffBtn, syncBtn}
	for _, b := range state.actions {
		b.Disable()
	}

	return container.NewBorder(
		nil,
		nil,
		container.NewHBox(state.connectBtn, settingsBtn, clearBtn),
		container.NewHBox(statusBtn, pumpOnBtn, pumpOffBtn, syncBtn),
		nil,
	)
}

// createCommandBar creates the free-form command entry and the status line.
func createCommandBar(state *appState) fyne.CanvasObject {
	entry := widget.NewEntry()
	entry.SetPlaceHolder("Command, e.g. water 6 0 7 30")

	submit := func() {
		if state.session == nil || entry.Text == "" {
			return
		}
		state.send(entry.Text)
		entry.SetText("")
	}
	entry.OnSubmitted = func(string) { submit() }
	sendBtn := widget.NewButtonWithIcon("", theme.MailSendIcon(), submit)

	return container.NewVBox(
		container.NewBorder(nil, nil, nil, sendBtn, entry),
		state.status,
	)
}

// handleConnect handles the connect/disconnect button click.
func handleConnect(state *appState) {
	if state.session != nil {
		state.disconnect()
		return
	}

	out := func(s string) {
		fyne.Do(func() { state.transcript.Append(s) })
	}

	if state.useMock {
		state.session = session.StartMock(state.cfg, out)
		log.Println("Using simulated controller")
		state.watchMock()
	} else {
		sess, err := session.DialSerial(state.cfg, out)
		if err != nil {
			dialog.ShowError(fmt.Errorf("failed to connect to %s: %w", state.cfg.Serial.Port, err), state.window)
			return
		}
		state.session = sess
		state.status.SetText("Connected to " + state.cfg.Serial.Port)
		log.Printf("Connected to serial port: %s", state.cfg.Serial.Port)
	}

	state.connectBtn.SetText("Disconnect")
	state.connectBtn.SetIcon(theme.LogoutIcon())
	for _, b := range state.actions {
		b.Enable()
	}
}

func (state *appState) disconnect() {
	if state.session == nil {
		return
	}
	if state.stopStatus != nil {
		close(state.stopStatus)
		state.stopStatus = nil
	}
	if err := state.session.Close(); err != nil {
		log.Printf("Failed to close session: %v", err)
	}
	state.session = nil

	state.connectBtn.SetText("Connect")
	state.connectBtn.SetIcon(theme.LoginIcon())
	for _, b := range state.actions {
		b.Disable()
	}
	state.status.SetText("Disconnected")
	log.Println("Disconnected")
}

// watchMock refreshes the status line and the trend from the simulated plant.
func (state *appState) watchMock() {
	mock := state.session.Mock()
	ctrl := state.session.Controller()
	capacity := state.cfg.Mock.ReservoirML
	stop := make(chan struct{})
	state.stopStatus = stop
	state.history.Reset()

	go func() {
		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
			}

			st := mock.State()
			pump := "off"
			if st.PumpOn {
				pump = "on"
			}
			text := fmt.Sprintf("Simulated %s | reservoir %.0f mL | soil %.1f %% | light %.0f %% | battery %.2f V | pump %s",
				controller.FormatClock(st.Seconds), st.Reservoir, st.Moisture, st.Light, st.Battery, pump)
			reservoir := float32(0)
			if capacity > 0 {
				reservoir = st.Reservoir / capacity * 100
			}
			state.history.Add(history.Point{
				Elapsed:   time.Duration(st.Elapsed) * time.Microsecond,
				Moisture:  st.Moisture,
				Light:     st.Light,
				Reservoir: reservoir,
				Pump:      st.PumpOn,
			})
			points := state.history.Points(nil)
			threshold := ctrl.Thresholds().Moisture

			fyne.Do(func() {
				if state.stopStatus == stop {
					state.status.SetText(text)
					state.trend.UpdateData(points, threshold)
				}
			})
		}
	}()
}

// send writes operator lines in the background so a busy controller does not block the UI.
func (state *appState) send(lines ...string) {
	sess := state.session
	if sess == nil {
		return
	}
	go func() {
		for _, l := range lines {
			if err := sess.Send(l); err != nil {
				fyne.Do(func() { dialog.ShowError(err, state.window) })
				return
			}
		}
	}()
}

func (state *appState) saveConfig() {
	if err := state.cfg.Save(state.configPath); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save config: %w", err), state.window)
	}
}
