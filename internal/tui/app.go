// Package tui is the interactive inspector: statistics, horizon and
// excavation listings, the topology audit and the load status of one mine
// file.
package tui

import (
	"context"
	"fmt"

	"github.com/rivo/tview"

	"mineview/internal/loader"
	"mineview/internal/log"
	"mineview/internal/scene"
	"mineview/internal/theme"
	"mineview/internal/topology"
)

// MineApp represents the main tview application
type MineApp struct {
	app    *tview.Application
	loader *loader.Loader
	scene  *scene.Scene
	path   string
	comps  *theme.ThemedComponents

	pages    *tview.Pages
	mainGrid *tview.Grid

	// UI Components
	statsView    *tview.TextView
	topologyView *tview.TextView
	horizons     *GroupTable
	excavations  *GroupTable
	statusBar    *StatusBar

	inputHandler *InputHandler
	focusOrder   []tview.Primitive
	focused      int
	modalVisible bool

	ctx    context.Context
	cancel context.CancelFunc
}

// modelView is everything the panels show for one published model,
// computed off the UI goroutine.
type modelView struct {
	model    *loader.Model
	groups   []scene.GroupInfo
	summary  topology.Summary
	findings []topology.Finding
	err      error
}

// NewApplication creates the inspector for one file. The extra loader
// options are appended to the inspector's own status sink.
func NewApplication(path string, th theme.Theme, opts ...loader.Option) *MineApp {
	app := tview.NewApplication()
	comps := theme.NewThemedComponents(th)
	ctx, cancel := context.WithCancel(context.Background())

	ma := &MineApp{
		app:          app,
		scene:        scene.New(),
		path:         path,
		comps:        comps,
		statsView:    comps.NewTextView("Mine"),
		topologyView: comps.NewTextView("Topology"),
		horizons:     NewGroupTable(comps, scene.KindHorizon),
		excavations:  NewGroupTable(comps, scene.KindExcavation),
		statusBar:    NewStatusBar(comps),
		inputHandler: NewInputHandler(),
		ctx:          ctx,
		cancel:       cancel,
	}

	opts = append([]loader.Option{loader.WithStatus(func(st loader.Status) {
		app.QueueUpdateDraw(func() {
			ma.statusBar.Update(st)
		})
	})}, opts...)
	ma.loader = loader.New(opts...)
	ma.loader.OnPublish(func(m *loader.Model) {
		v := ma.prepare(m)
		app.QueueUpdateDraw(func() {
			ma.apply(v)
		})
	})

	ma.statsView.SetText(fmt.Sprintf("%sWaiting for %s...[-]",
		tag(th.DefaultColors().Waiting), tview.Escape(path)))

	ma.setupUI()
	ma.setupInputHandling()
	return ma
}

// setupUI configures the user interface layout
func (ma *MineApp) setupUI() {
	ma.mainGrid = tview.NewGrid().
		SetRows(0, 0, 1).
		SetColumns(40, 0).
		SetBorders(false)

	ma.mainGrid.AddItem(ma.statsView, 0, 0, 1, 1, 0, 0, false)
	ma.mainGrid.AddItem(ma.topologyView, 1, 0, 1, 1, 0, 0, false)
	ma.mainGrid.AddItem(ma.horizons.GetView(), 0, 1, 1, 1, 0, 0, true)
	ma.mainGrid.AddItem(ma.excavations.GetView(), 1, 1, 1, 1, 0, 0, false)
	ma.mainGrid.AddItem(ma.statusBar.GetView(), 2, 0, 1, 2, 0, 0, false)

	ma.focusOrder = []tview.Primitive{
		ma.horizons.GetView(),
		ma.excavations.GetView(),
		ma.topologyView,
		ma.statsView,
	}

	ma.horizons.SetSelectedFunc(ma.showGroupModal)
	ma.excavations.SetSelectedFunc(ma.showGroupModal)

	ma.pages = tview.NewPages()
	ma.pages.AddPage("main", ma.mainGrid, true, true)

	ma.app.SetRoot(ma.pages, true)
}

// setupInputHandling configures input event handling
func (ma *MineApp) setupInputHandling() {
	ma.inputHandler.SetCallbacks(
		ma.reload,
		ma.exit,
		ma.nextFocus,
		ma.closeModal,
	)
	ma.app.SetInputCapture(ma.inputHandler.HandleKeyEvent)
}

// Run loads the file and blocks until the user quits
func (ma *MineApp) Run() error {
	log.Info("inspector started", "path", ma.path)
	ma.reload()
	defer ma.cancel()
	return ma.app.Run()
}

// Loader exposes the loader so callers can inspect the published model
func (ma *MineApp) Loader() *loader.Loader {
	return ma.loader
}

// reload starts a load in the background. Status and results arrive
// through QueueUpdateDraw, so it must not block the event loop.
func (ma *MineApp) reload() {
	go func() {
		if _, err := ma.loader.LoadFile(ma.ctx, ma.path); err != nil {
			log.Warn("load failed", "path", ma.path, "error", err)
		}
	}()
}

// exit shuts down the application
func (ma *MineApp) exit() {
	ma.cancel()
	ma.app.Stop()
}

func (ma *MineApp) nextFocus() {
	ma.focused = (ma.focused + 1) % len(ma.focusOrder)
	ma.app.SetFocus(ma.focusOrder[ma.focused])
}

// prepare builds the scene and the topology report for a published model
func (ma *MineApp) prepare(m *loader.Model) modelView {
	v := modelView{model: m}

	groups, err := ma.scene.Build(m.Graph, m.Extent.Center)
	if err != nil {
		v.err = err
		return v
	}
	v.groups = groups
	log.Debug("scene built", "groups", len(groups), "meshes", ma.scene.MeshCount())

	network, err := topology.New(m.Graph)
	if err != nil {
		v.err = err
		return v
	}
	if v.summary, err = network.Summary(); err != nil {
		v.err = err
		return v
	}
	if v.findings, err = network.Audit(); err != nil {
		v.err = err
	}
	return v
}

// apply fills the panels; runs on the UI goroutine
func (ma *MineApp) apply(v modelView) {
	ma.statusBar.SetSource(v.model.Source)
	ma.statsView.SetText(statsText(v.model))
	ma.horizons.SetGroups(v.groups)
	ma.excavations.SetGroups(v.groups)

	if v.err != nil {
		ma.topologyView.SetText(tview.Escape(v.err.Error()))
		return
	}
	ma.topologyView.SetText(topologyText(v.summary, v.findings, ma.comps.Theme().PanelColors()))
}

// showGroupModal displays the details of one group
func (ma *MineApp) showGroupModal(info scene.GroupInfo) {
	ma.modalVisible = true
	ma.inputHandler.SetModalVisible(true)

	modal := ma.comps.NewModal().
		SetText(groupDetail(info)).
		AddButtons([]string{"Close"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			ma.closeModal()
		})

	ma.pages.AddPage("modal", modal, true, true)
	ma.app.SetFocus(modal)
}

// closeModal closes the currently displayed modal
func (ma *MineApp) closeModal() {
	if !ma.modalVisible {
		return
	}
	ma.modalVisible = false
	ma.inputHandler.SetModalVisible(false)
	ma.pages.RemovePage("modal")
	ma.app.SetFocus(ma.focusOrder[ma.focused])
}
