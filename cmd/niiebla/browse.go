package main

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/zelzip/niiebla-go/lib/niiebla"
	"github.com/zelzip/niiebla-go/lib/niiebla/wad"
)

var (
	browseHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("14")).
				MarginBottom(1)

	browseLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("12")).
				Bold(true)

	browseValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15"))

	browseDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Faint(true)
)

// browseItem is a single row in the content list: a content entry's
// position, ID, index and size.
type browseItem struct {
	position int
	entry    niiebla.TitleMetadataContentEntry
}

func (i browseItem) Title() string {
	return fmt.Sprintf("[%d] id=0x%08x index=%d", i.position, i.entry.ID, i.entry.Index)
}

func (i browseItem) Description() string {
	return fmt.Sprintf("size=%d bytes", i.entry.Size)
}

func (i browseItem) FilterValue() string {
	return i.Title()
}

type browseModel struct {
	wadStream     io.ReadWriteSeeker
	wad           *wad.InstallableWad
	ticket        *niiebla.PreSwitchTicket
	titleMetadata *niiebla.TitleMetadata

	list    list.Model
	preview string
	err     error
}

func newBrowseModel(
	s io.ReadWriteSeeker,
	w *wad.InstallableWad,
	ticket *niiebla.PreSwitchTicket,
	titleMetadata *niiebla.TitleMetadata,
) browseModel {
	items := make([]list.Item, len(titleMetadata.ContentChunkEntries))
	for position, entry := range titleMetadata.ContentChunkEntries {
		items[position] = browseItem{position: position, entry: entry}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = fmt.Sprintf("Content entries of title %s", titleMetadata.TitleID)

	return browseModel{
		wadStream:     s,
		wad:           w,
		ticket:        ticket,
		titleMetadata: titleMetadata,
		list:          l,
	}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

// previewContent decrypts the first bytes of the selected content and
// renders them as a hex dump, exercising the same exported view used by
// the export command.
func (m *browseModel) previewContent(item browseItem) {
	selector := m.titleMetadata.SelectWithPhysicalPosition(item.position)

	contentStream, err := m.wad.DecryptedContentView(
		m.wadStream, m.ticket, m.titleMetadata, niiebla.CryptographicMethodWii, selector,
	)
	if err != nil {
		m.preview = browseDimStyle.Render("could not decrypt: " + err.Error())
		return
	}

	buf := make([]byte, 64)
	n, err := io.ReadFull(contentStream, buf)
	if err != nil && err != io.ErrUnexpectedEOF {
		m.preview = browseDimStyle.Render("could not read: " + err.Error())
		return
	}

	m.preview = hex.Dump(buf[:n])
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "enter":
			if item, ok := m.list.SelectedItem().(browseItem); ok {
				m.previewContent(item)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m browseModel) View() string {
	header := browseHeaderStyle.Render(fmt.Sprintf("niiebla browse — kind %d", m.wad.Kind))

	summary := fmt.Sprintf(
		"%s %s  %s %s  %s %d\n",
		browseLabelStyle.Render("title:"),
		browseValueStyle.Render(m.titleMetadata.TitleID.String()),
		browseLabelStyle.Render("version:"),
		browseValueStyle.Render(fmt.Sprintf("%d", m.titleMetadata.TitleVersion)),
		browseLabelStyle.Render("group:"),
		m.titleMetadata.GroupID,
	)

	body := m.list.View()

	var previewBlock string
	if m.preview != "" {
		previewBlock = "\n" + browseLabelStyle.Render("preview:") + "\n" + m.preview
	}

	footer := browseDimStyle.Render("enter: preview decrypted bytes   q: quit")

	return header + summary + body + previewBlock + "\n" + footer
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactively browse a WAD's structure and content",
	RunE: func(cmd *cobra.Command, args []string) error {
		file, w, err := openWad(true)
		if err != nil {
			return err
		}
		defer ensureClosed(file)

		ticket, err := w.Ticket(file)
		if err != nil {
			return fmt.Errorf("reading ticket: %w", err)
		}
		titleMetadata, err := w.TitleMetadata(file)
		if err != nil {
			return fmt.Errorf("reading title metadata: %w", err)
		}

		model := newBrowseModel(file, w, ticket, titleMetadata)

		program := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("running browser: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
