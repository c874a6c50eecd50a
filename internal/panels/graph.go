package panels

type Trace struct {
	X    []int  `json:"x"`
	Y    []int  `json:"y"`
	Type string `json:"type"`
}

type Figure struct {
	Title string  `json:"title"`
	Data  []Trace `json:"data"`
}

// Graph returns the static bar chart. A new value is built on each call so
// callers can't mutate a shared figure.
func Graph() Figure {
	return Figure{
		Title: "Tab content 2",
		Data: []Trace{
			{
				X:    []int{1, 2, 3},
				Y:    []int{5, 10, 6},
				Type: "bar",
			},
		},
	}
}
