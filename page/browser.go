package page

// Browser owns a set of pages and tracks the one being shown.
type Browser struct {
	activePageIndex int
	pages           []*Page
}

// NewBrowser returns a browser with a single empty page.
func NewBrowser(opts ...Option) *Browser {
	b := &Browser{}
	b.AddPage(NewPage(opts...))
	return b
}

// AddPage attaches p to the browser and makes it the active page.
func (b *Browser) AddPage(p *Page) {
	p.browser = b
	b.pages = append(b.pages, p)
	b.activePageIndex = len(b.pages) - 1
}

func (b *Browser) CurrentPage() *Page {
	return b.pages[b.activePageIndex]
}

func (b *Browser) Pages() []*Page {
	return b.pages
}

// SetActivePage switches to the page at index i. It reports false when no
// such page exists.
func (b *Browser) SetActivePage(i int) bool {
	if i < 0 || i >= len(b.pages) {
		return false
	}
	b.activePageIndex = i
	return true
}
