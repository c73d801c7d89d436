package markup

import "testing"

const page = `<html><head><title>Doc</title></head><body>
<div class="hero wide"><img src="a.png" alt="first"></div>
<p><img src="b.png" class="fallback"></p>
</body></html>`

func TestFindElements(t *testing.T) {
	doc, err := Parse(page)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	imgs := FindElements(doc, "img")
	if len(imgs) != 2 {
		t.Fatalf("Expected 2 images, got %d", len(imgs))
	}
	if src, _ := Attr(imgs[0], "src"); src != "a.png" {
		t.Errorf("Expected first image a.png, got %s", src)
	}
	if len(FindElements(doc, "picture")) != 0 {
		t.Error("Expected no picture elements")
	}
	if First(doc, "picture") != nil {
		t.Error("Expected First to return nil when nothing matches")
	}
}

func TestAttrAndHasClass(t *testing.T) {
	doc, _ := Parse(page)

	div := First(doc, "div")
	if !HasClass(div, "wide") || !HasClass(div, "hero") {
		t.Error("Expected div to have classes hero and wide")
	}
	if HasClass(div, "her") {
		t.Error("HasClass matched a class prefix")
	}
	if _, ok := Attr(div, "id"); ok {
		t.Error("Expected no id attribute")
	}
	if _, ok := Attr(nil, "id"); ok {
		t.Error("Attr on nil node should report missing")
	}
	if !HasClass(FindElements(doc, "img")[1], "fallback") {
		t.Error("Expected second image to have the fallback class")
	}
}
