package analytics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

type Frequency struct {
	Phrase string
	Count  int
}

// Frequencies 按次数降序；序列化为保持顺序的 JSON 对象
type Frequencies []Frequency

func (f Frequencies) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Phrase)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(e.Count))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON 按对象中键的出现顺序还原
func (f *Frequencies) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("frequencies: expected object, got %v", tok)
	}
	out := Frequencies{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		phrase, _ := tok.(string)
		var n int
		if err := dec.Decode(&n); err != nil {
			return fmt.Errorf("frequencies %q: %w", phrase, err)
		}
		out = append(out, Frequency{Phrase: phrase, Count: n})
	}
	*f = out
	return nil
}

func (f Frequencies) Phrases() []string {
	out := make([]string, len(f))
	for i, e := range f {
		out[i] = e.Phrase
	}
	return out
}

// counter 记住首次出现的顺序，次数相同按首次出现排序
type counter struct {
	index map[string]int
	items []Frequency
}

func newCounter() *counter { return &counter{index: map[string]int{}} }

func (c *counter) add(phrases ...string) {
	for _, p := range phrases {
		if i, ok := c.index[p]; ok {
			c.items[i].Count++
			continue
		}
		c.index[p] = len(c.items)
		c.items = append(c.items, Frequency{Phrase: p, Count: 1})
	}
}

func (c *counter) mostCommon(n int) Frequencies {
	out := append(Frequencies{}, c.items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
