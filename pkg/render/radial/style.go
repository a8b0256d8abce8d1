package radial

import "github.com/matzehuels/kintree/pkg/render/scene"

// DefaultStyleSheet colours person markers by classification.
const DefaultStyleSheet = `
    .person circle { fill: #f2f2f2; stroke: #555; stroke-width: 1.5; }
    .person.sex-male circle { fill: #a8cdf0; }
    .person.sex-female circle { fill: #f4b8c5; }
    .person.sex-other circle { fill: #d9d9d9; }
    .person.deceased circle { stroke-dasharray: 3,2; opacity: 0.75; }
    .person.infant circle { stroke: #999; }
    .person.root circle { stroke-width: 3; }
    .person text { font: 12px sans-serif; fill: #222; }
    .person text.dates { font-size: 10px; fill: #777; }
  `

// StyleElement wraps css in a <style> element.
func StyleElement(css string) *scene.Element {
	return scene.New("style").SetText(css)
}

var sexFill = map[string]string{
	"sex-male":   "#a8cdf0",
	"sex-female": "#f4b8c5",
	"sex-other":  "#d9d9d9",
}

// ApplyPresentation copies the colours of [DefaultStyleSheet] onto person
// circles as presentation attributes, for consumers that ignore CSS such
// as rasterisers. It mutates the tree in place.
func ApplyPresentation(root *scene.Element) {
	root.Walk(func(e *scene.Element) bool {
		if !e.HasClass("person") {
			return true
		}
		circle := e
		if e.Tag != "circle" {
			circles := e.FindAll(scene.ByTag("circle"))
			if len(circles) == 0 {
				return false
			}
			circle = circles[0]
		}
		paint(circle, e)
		return false
	})
}

func paint(circle, classes *scene.Element) {
	fill := "#f2f2f2"
	for c, f := range sexFill {
		if classes.HasClass(c) {
			fill = f
		}
	}
	stroke, width := "#555", "1.5"
	if classes.HasClass("infant") {
		stroke = "#999"
	}
	if classes.HasClass("root") {
		width = "3"
	}
	circle.Set("fill", fill).Set("stroke", stroke).Set("stroke-width", width)
	if classes.HasClass("deceased") {
		circle.Set("stroke-dasharray", "3,2").Set("opacity", "0.75")
	}
}
