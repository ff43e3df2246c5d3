package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/valyala/quicktemplate"

	"github.com/suhaib0edu/ariabridge/semantics"
)

// writeHTML renders the tree as nested lists, attributes included, with
// quicktemplate's escaped writer so recorded labels can't inject markup.
func writeHTML(o *semantics.Owner, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating HTML snapshot: %w", err)
	}
	defer f.Close()

	qw := quicktemplate.AcquireWriter(f)
	defer quicktemplate.ReleaseWriter(qw)

	qw.N().S("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>semantics tree</title></head><body>\n")
	if root := o.Root(); root != nil {
		qw.N().S("<ul>\n")
		writeNodeHTML(qw, o, root)
		qw.N().S("</ul>\n")
	} else {
		qw.N().S("<p>empty tree</p>\n")
	}
	qw.N().S("</body></html>\n")
	return nil
}

func writeNodeHTML(qw *quicktemplate.Writer, o *semantics.Owner, n *semantics.Node) {
	qw.N().S("<li><code>#")
	qw.N().S(strconv.FormatInt(n.ID(), 10))
	qw.N().S("</code>")
	if label := n.Label(); label != "" {
		qw.N().S(" ")
		qw.E().S(label)
	}
	if value := n.Value(); value != "" {
		qw.N().S(" = ")
		qw.E().S(value)
	}
	for name, v := range n.Element().Attributes() {
		qw.N().S(" <small>")
		qw.E().S(name)
		qw.N().S("=&quot;")
		qw.E().S(v)
		qw.N().S("&quot;</small>")
	}
	if children := n.ChildIDs(); len(children) > 0 {
		qw.N().S("\n<ul>\n")
		for _, id := range children {
			// The tree was validated before rendering; missing ids
			// cannot occur here.
			writeNodeHTML(qw, o, o.Node(id))
		}
		qw.N().S("</ul>\n")
	}
	qw.N().S("</li>\n")
}
