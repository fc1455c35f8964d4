package composer

// SectionType names a song section.
type SectionType string

const (
	SectionIntro     SectionType = "intro"
	SectionBuildup   SectionType = "buildup"
	SectionVerse     SectionType = "verse"
	SectionDrop      SectionType = "drop"
	SectionChorus    SectionType = "chorus"
	SectionBreakdown SectionType = "breakdown"
	SectionBridge    SectionType = "bridge"
	SectionOutro     SectionType = "outro"
	SectionDefault   SectionType = "default"
)

type sectionShape struct {
	bars   int
	energy float64
}

var sectionShapes = map[SectionType]sectionShape{
	SectionIntro:     {4, 0.3},
	SectionBuildup:   {4, 0.5},
	SectionVerse:     {8, 0.6},
	SectionDrop:      {8, 1.0},
	SectionChorus:    {8, 1.0},
	SectionBreakdown: {8, 0.4},
	SectionBridge:    {8, 0.8},
	SectionOutro:     {4, 0.4},
	SectionDefault:   {8, 0.7},
}

// Section is a contiguous span of bars.
type Section struct {
	Type     SectionType `json:"type"`
	StartBar int         `json:"start_bar"`
	Bars     int         `json:"bars"`
	Energy   float64     `json:"energy"`
	// Number is the 1-based repeat index for verses and choruses, 0 otherwise.
	Number int `json:"number,omitempty"`
}

// EndBar is the first bar after the section.
func (s Section) EndBar() int {
	return s.StartBar + s.Bars
}

// BuildStructure lays out sections in canonical order:
// intro, buildup, then per repeat verse/drop/chorus/breakdown/bridge, then outro.
// An empty layout becomes a single default section.
func BuildStructure(p Params) []Section {
	var (
		sections []Section
		bar      int
	)
	add := func(t SectionType, number int) {
		shape := sectionShapes[t]
		sections = append(sections, Section{Type: t, StartBar: bar, Bars: shape.bars, Energy: shape.energy, Number: number})
		bar += shape.bars
	}

	if p.Intro {
		add(SectionIntro, 0)
	}
	if p.Buildup {
		add(SectionBuildup, 0)
	}

	for i := 0; i < max(p.Verses, p.Choruses); i++ {
		if i < p.Verses {
			add(SectionVerse, i+1)
		}
		if i == 0 && p.Drop {
			add(SectionDrop, 0)
		}
		if i < p.Choruses {
			add(SectionChorus, i+1)
		}
		if i == 0 && p.Breakdown {
			add(SectionBreakdown, 0)
		}
		if i == 1 && p.Bridge {
			add(SectionBridge, 0)
		}
	}

	if p.Outro {
		add(SectionOutro, 0)
	}

	if len(sections) == 0 {
		add(SectionDefault, 0)
	}
	return sections
}

// SongBars is the total bar count BuildStructure would produce for p.
func SongBars(p Params) int {
	sections := BuildStructure(p)
	return sections[len(sections)-1].EndBar()
}
