// Package report prints extraction progress and a summary to a terminal.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/simp-lee/epubtext/book"
)

// TitleWidth is the display width chapter titles are cut to in listings.
const TitleWidth = 40

// Styles groups the lipgloss styles used by a Printer.
type Styles struct {
	Header  lipgloss.Style
	Label   lipgloss.Style
	Index   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
}

// NewStyles builds styles bound to r, so color output follows the
// capabilities of the writer r was created for.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Label:   r.NewStyle().Foreground(lipgloss.Color("62")),
		Index:   r.NewStyle().Foreground(lipgloss.Color("241")),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("240")),
		Success: r.NewStyle().Foreground(lipgloss.Color("78")),
		Error:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	}
}

// Printer writes report lines to an io.Writer.
type Printer struct {
	w      io.Writer
	styles Styles
}

// New returns a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w, styles: NewStyles(lipgloss.NewRenderer(w))}
}

// Banner prints the program heading.
func (p *Printer) Banner() {
	fmt.Fprintln(p.w, p.styles.Header.Render("=== EPUB 讀取器 ==="))
	fmt.Fprintln(p.w)
}

// Loaded reports a successfully opened input.
func (p *Printer) Loaded(name string) {
	fmt.Fprintln(p.w, p.styles.Success.Render("✓ 成功載入: "+name))
}

// LoadFailed reports an input that could not be opened.
func (p *Printer) LoadFailed(err error) {
	fmt.Fprintln(p.w, p.styles.Error.Render(fmt.Sprintf("✗ 載入失敗: %v", err)))
}

// Metadata prints the book information block.
func (p *Printer) Metadata(md book.Metadata) {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, p.styles.Header.Render("=== 書籍資訊 ==="))
	p.field("書名", md.Title)
	p.field("作者", md.Author)
	p.field("語言", md.Language)
	p.field("出版社", md.Publisher)
}

func (p *Printer) field(label, value string) {
	fmt.Fprintf(p.w, "%s %s\n", p.styles.Label.Render(label+":"), value)
}

// Chapters lists each chapter with a display-truncated title and its length.
func (p *Printer) Chapters(chapters []book.Chapter) {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, p.styles.Header.Render("=== 開始提取章節 ==="))
	for _, ch := range chapters {
		fmt.Fprintf(p.w, "  %s %s %s\n",
			p.styles.Index.Render(fmt.Sprintf("[%d]", ch.Number)),
			ChapterTitle(ch.Title),
			p.styles.Muted.Render(fmt.Sprintf("(%s 字)", humanize.Comma(int64(ch.CharCount)))),
		)
	}
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, p.styles.Success.Render(fmt.Sprintf("✓ 共提取 %d 個章節", len(chapters))))
}

// ChapterTitle cuts title to TitleWidth terminal cells, appending "..."
// when anything was removed. Wide (CJK) runes count as two cells.
func ChapterTitle(title string) string {
	return runewidth.Truncate(title, TitleWidth, "...")
}

// Skipped prints a one-line summary of rejected items, if any.
func (p *Printer) Skipped(skipped []book.Skipped) {
	if len(skipped) == 0 {
		return
	}
	counts := make(map[book.SkipReason]int)
	for _, s := range skipped {
		counts[s.Reason]++
	}
	line := fmt.Sprintf("略過 %d 個項目", len(skipped))
	for _, r := range []book.SkipReason{book.SkipTooShort, book.SkipUnreadable, book.SkipMalformed} {
		if n := counts[r]; n > 0 {
			line += fmt.Sprintf(", %s: %d", r, n)
		}
	}
	fmt.Fprintln(p.w, p.styles.Muted.Render(line))
}

// Statistics prints totals with thousands separators.
func (p *Printer) Statistics(st book.Statistics) {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, p.styles.Header.Render("=== 統計資訊 ==="))
	p.field("總章節數", humanize.Comma(int64(st.TotalChapters)))
	p.field("總字數", humanize.Comma(int64(st.TotalCharacters)))
	p.field("平均每章字數", humanize.Comma(int64(st.AvgChapterLength)))
}

// Saved reports a written output file.
func (p *Printer) Saved(path string) {
	fmt.Fprintln(p.w, p.styles.Success.Render("✓ 已儲存: "+path))
}

// SaveFailed reports an output that could not be written.
func (p *Printer) SaveFailed(path string, err error) {
	fmt.Fprintln(p.w, p.styles.Error.Render(fmt.Sprintf("✗ 儲存失敗 %s: %v", path, err)))
}

// Done prints the closing line.
func (p *Printer) Done(ok bool) {
	fmt.Fprintln(p.w)
	if ok {
		fmt.Fprintln(p.w, p.styles.Success.Render("✓ 處理完成！"))
		return
	}
	fmt.Fprintln(p.w, p.styles.Error.Render("✗ 處理未完成"))
}
