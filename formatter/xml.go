package formatter

import (
	"strconv"
	"strings"
)

// BuildXML serializes a vehicle snapshot to XML
func (rb *responseBuilder) BuildXML(res *Response) []byte {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>")
	b.WriteString("<Siri xmlns=\"http://www.siri.org.uk/siri\">")
	sd := res.Siri.ServiceDelivery
	b.WriteString("<ServiceDelivery>")
	writeElement(&b, "ResponseTimestamp", sd.ResponseTimestamp)
	writeElement(&b, "ProducerRef", sd.ProducerRef)
	for _, vm := range sd.VehicleMonitoringDelivery {
		writeVehicleMonitoringXML(&b, vm)
	}
	b.WriteString("</ServiceDelivery>")
	b.WriteString("</Siri>")
	return []byte(b.String())
}

func writeVehicleMonitoringXML(b *strings.Builder, vm VehicleMonitoring) {
	b.WriteString("<VehicleMonitoringDelivery>")
	writeElement(b, "ResponseTimestamp", vm.ResponseTimestamp)
	writeElement(b, "ValidUntil", vm.ValidUntil)
	for _, va := range vm.VehicleActivity {
		b.WriteString("<VehicleActivity>")
		writeElement(b, "RecordedAtTime", va.RecordedAtTime)
		writeMVJXML(b, va.MonitoredVehicleJourney)
		b.WriteString("</VehicleActivity>")
	}
	b.WriteString("</VehicleMonitoringDelivery>")
}

func writeMVJXML(b *strings.Builder, mvj MonitoredVehicleJourney) {
	b.WriteString("<MonitoredVehicleJourney>")
	writeElement(b, "LineRef", mvj.LineRef)
	b.WriteString("<DirectionRef>")
	b.WriteString(strconv.Itoa(mvj.DirectionRef))
	b.WriteString("</DirectionRef>")
	writeElement(b, "VehicleMode", mvj.VehicleMode)
	writeElement(b, "PublishedLineName", mvj.PublishedLineName)
	b.WriteString("<Monitored>")
	b.WriteString(strconv.FormatBool(mvj.Monitored))
	b.WriteString("</Monitored>")
	b.WriteString("<VehicleLocation>")
	b.WriteString("<Latitude>")
	b.WriteString(strconv.FormatFloat(mvj.VehicleLocation.Latitude, 'f', 6, 64))
	b.WriteString("</Latitude>")
	b.WriteString("<Longitude>")
	b.WriteString(strconv.FormatFloat(mvj.VehicleLocation.Longitude, 'f', 6, 64))
	b.WriteString("</Longitude>")
	b.WriteString("</VehicleLocation>")
	b.WriteString("<ProgressRate>")
	b.WriteString(strconv.FormatFloat(mvj.ProgressRate, 'f', -1, 64))
	b.WriteString("</ProgressRate>")
	writeElement(b, "VehicleRef", mvj.VehicleRef)
	b.WriteString("</MonitoredVehicleJourney>")
}

// writeElement skips empty values.
func writeElement(b *strings.Builder, tag, value string) {
	if value == "" {
		return
	}
	b.WriteString("<" + tag + ">")
	b.WriteString(xmlEscape(value))
	b.WriteString("</" + tag + ">")
}

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
	"'", "&apos;",
)

func xmlEscape(s string) string {
	return xmlReplacer.Replace(s)
}
