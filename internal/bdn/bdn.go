package bdn

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/mivori/sub2bdnxml/internal/timecode"
)

// Info describes the output canvas written to the Description block.
type Info struct {
	Width       int
	Height      int
	Rate        timecode.Rate
	VideoFormat string
}

// Event is one timed graphic of the document.
type Event struct {
	InTC   string
	OutTC  string
	File   string
	X, Y   int
	Width  int
	Height int
}

// Generator collects events and serializes a BDN 0.93 document, per the
// Sony BDN file format as implemented by BDSup2Sub.
type Generator struct {
	info   Info
	events []Event
}

func NewGenerator(info Info) *Generator {
	return &Generator{info: info}
}

func (g *Generator) AddEvent(event Event) {
	g.events = append(g.events, event)
}

// WriteFile serializes the document to path. An empty timeline still
// produces a valid document with a zeroed event summary.
func (g *Generator) WriteFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if err := g.write(w); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func (g *Generator) write(w io.Writer) error {
	firstIn, lastOut := "00:00:00:00", "00:00:00:00"
	if len(g.events) > 0 {
		firstIn = g.events[0].InTC
		lastOut = g.events[len(g.events)-1].OutTC
	}

	doc := xmlBDN{
		Version: "0.93",
		XSI:     "http://www.w3.org/2001/XMLSchema-instance",
		Schema:  "BD-03-006-0093b BDN File Format.xsd",
		Description: xmlDescription{
			Name:     xmlName{Title: "BDN Subtitle", Content: ""},
			Language: xmlLanguage{Code: "und"},
			Format: xmlFormat{
				VideoFormat: g.info.VideoFormat,
				FrameRate:   RateLabel(g.info.Rate),
				DropFrame:   "False",
			},
			Events: xmlEventSummary{
				Type:           "Graphic",
				FirstEventInTC: firstIn,
				LastEventOutTC: lastOut,
				NumberofEvents: len(g.events),
			},
		},
	}
	for _, event := range g.events {
		doc.Events.Events = append(doc.Events.Events, xmlEvent{
			InTC:   event.InTC,
			OutTC:  event.OutTC,
			Forced: "False",
			Graphic: xmlGraphic{
				Width:  event.Width,
				Height: event.Height,
				X:      event.X,
				Y:      event.Y,
				File:   event.File,
			},
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

type xmlBDN struct {
	XMLName     xml.Name       `xml:"BDN"`
	Version     string         `xml:"Version,attr"`
	XSI         string         `xml:"xmlns:xsi,attr"`
	Schema      string         `xml:"xsi:noNamespaceSchemaLocation,attr"`
	Description xmlDescription `xml:"Description"`
	Events      xmlEventList   `xml:"Events"`
}

type xmlDescription struct {
	Name     xmlName         `xml:"Name"`
	Language xmlLanguage     `xml:"Language"`
	Format   xmlFormat       `xml:"Format"`
	Events   xmlEventSummary `xml:"Events"`
}

type xmlName struct {
	Title   string `xml:"Title,attr"`
	Content string `xml:"Content,attr"`
}

type xmlLanguage struct {
	Code string `xml:"Code,attr"`
}

type xmlFormat struct {
	VideoFormat string `xml:"VideoFormat,attr"`
	FrameRate   string `xml:"FrameRate,attr"`
	DropFrame   string `xml:"DropFrame,attr"`
}

type xmlEventSummary struct {
	Type           string `xml:"Type,attr"`
	FirstEventInTC string `xml:"FirstEventInTC,attr"`
	LastEventOutTC string `xml:"LastEventOutTC,attr"`
	NumberofEvents int    `xml:"NumberofEvents,attr"`
}

type xmlEventList struct {
	Events []xmlEvent `xml:"Event"`
}

type xmlEvent struct {
	InTC    string     `xml:"InTC,attr"`
	OutTC   string     `xml:"OutTC,attr"`
	Forced  string     `xml:"Forced,attr"`
	Graphic xmlGraphic `xml:"Graphic"`
}

type xmlGraphic struct {
	Width  int    `xml:"Width,attr"`
	Height int    `xml:"Height,attr"`
	X      int    `xml:"X,attr"`
	Y      int    `xml:"Y,attr"`
	File   string `xml:",chardata"`
}
