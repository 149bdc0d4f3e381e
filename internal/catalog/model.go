package catalog

// FileRecord is a single hash-to-filename mapping inside a wad.
type FileRecord struct {
	Hash       uint64 `json:"hash"`
	Filename   string `json:"filename"`
	Confidence int    `json:"confidence"`
}

// WadEntry is an archive path together with the records listed under it, in
// input order.
type WadEntry struct {
	Path  string       `json:"path"`
	Files []FileRecord `json:"files"`
}

// CodeGroup collects every wad published under one code. Name is taken from
// the first header seen for the code and never updated afterwards.
type CodeGroup struct {
	Code string     `json:"code"`
	Name string     `json:"name"`
	Wads []WadEntry `json:"wads"`
}

// RecordCount returns the number of file records across all wads of the group.
func (g *CodeGroup) RecordCount() int {
	if g == nil {
		return 0
	}
	total := 0
	for _, wad := range g.Wads {
		total += len(wad.Files)
	}
	return total
}

// Catalog maps codes to their groups, preserving first-seen order.
type Catalog struct {
	groups []*CodeGroup
	byCode map[string]*CodeGroup
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byCode: make(map[string]*CodeGroup)}
}

// Groups returns the code groups in the order their codes were first attached.
func (c *Catalog) Groups() []*CodeGroup {
	if c == nil {
		return nil
	}
	out := make([]*CodeGroup, len(c.groups))
	copy(out, c.groups)
	return out
}

// Group looks up the group for code.
func (c *Catalog) Group(code string) (*CodeGroup, bool) {
	if c == nil {
		return nil, false
	}
	group, ok := c.byCode[code]
	return group, ok
}

// Len reports the number of distinct codes.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.groups)
}

// WadCount reports the number of wads across all groups.
func (c *Catalog) WadCount() int {
	if c == nil {
		return 0
	}
	total := 0
	for _, group := range c.groups {
		total += len(group.Wads)
	}
	return total
}

// RecordCount reports the number of file records across all groups.
func (c *Catalog) RecordCount() int {
	if c == nil {
		return 0
	}
	total := 0
	for _, group := range c.groups {
		total += group.RecordCount()
	}
	return total
}

// attach appends wad to the group for code, creating the group with name only
// when the code has not been seen before.
func (c *Catalog) attach(code, name string, wad WadEntry) {
	group, ok := c.byCode[code]
	if !ok {
		group = &CodeGroup{Code: code, Name: name, Wads: []WadEntry{}}
		c.byCode[code] = group
		c.groups = append(c.groups, group)
	}
	if wad.Files == nil {
		wad.Files = []FileRecord{}
	}
	group.Wads = append(group.Wads, wad)
}
