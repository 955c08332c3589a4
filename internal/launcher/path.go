package launcher

import "strings"

// SearchPath is the ordered list of directories a bare program name is looked
// up in. It is built once at startup and never changes.
type SearchPath []string

// NewSearchPath splits a colon-delimited PATH value. An empty value yields an
// empty SearchPath; an empty component means the current directory.
func NewSearchPath(value string) SearchPath {
	if value == "" {
		return nil
	}
	dirs := strings.Split(value, ":")
	for i, dir := range dirs {
		if dir == "" {
			dirs[i] = "."
		}
	}
	return SearchPath(dirs)
}

// Candidates returns the paths to try, in order, when running name. A name
// containing a slash is used as is.
func (p SearchPath) Candidates(name string) []string {
	if name == "" {
		return nil
	}
	if strings.Contains(name, "/") {
		return []string{name}
	}
	out := make([]string, 0, len(p))
	for _, dir := range p {
		if strings.HasSuffix(dir, "/") {
			out = append(out, dir+name)
		} else {
			out = append(out, dir+"/"+name)
		}
	}
	return out
}
