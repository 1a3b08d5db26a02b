package usecase

import (
	"fmt"
	"strings"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/pkg/utils"
)

// changeLabels maps monitored field names to the label shown on a change line.
var changeLabels = map[string]string{
	FieldStatus:          "Status",
	FieldScheduledOut:    "Scheduled departure",
	FieldEstimatedOut:    "Departure estimate",
	FieldActualOut:       "Departed",
	FieldScheduledIn:     "Scheduled arrival",
	FieldEstimatedIn:     "Arrival estimate",
	FieldActualIn:        "Arrived",
	FieldOrigin:          "Origin",
	FieldDestination:     "Destination",
	FieldGateOrigin:      "Departure gate",
	FieldGateDestination: "Arrival gate",
	FieldBaggageClaim:    "Baggage claim",
}

// timeFields are the monitored fields whose values are RFC3339 timestamps.
var timeFields = map[string]bool{
	FieldScheduledOut: true,
	FieldEstimatedOut: true,
	FieldActualOut:    true,
	FieldScheduledIn:  true,
	FieldEstimatedIn:  true,
	FieldActualIn:     true,
}

// departureFields render in the origin timezone; everything else time-valued
// renders in the destination timezone.
var departureFields = map[string]bool{
	FieldScheduledOut: true,
	FieldEstimatedOut: true,
	FieldActualOut:    true,
}

// ComposeMessage turns a classified update event, plus optional connection
// context, into traveler-facing text. The five defined classifications all
// produce text; an empty result marks an unknown classification.
func ComposeMessage(event *entity.UpdateEvent, conn *entity.Connection) string {
	if event == nil || event.Snapshot == nil {
		return ""
	}

	var body string
	switch event.Classification {
	case entity.UpdateMilestone:
		body = composeMilestone(event.Milestone, event.Snapshot)
	case entity.UpdateChange:
		body = composeChange(event.Changes, event.Snapshot)
	case entity.UpdateCombined:
		body = composeCombined(event)
	case entity.UpdateInboundDelay:
		body = composeInboundDelay(event.Inbound, event.Snapshot)
	case entity.UpdateInboundLanded:
		body = composeInboundLanded(event.Inbound, event.Snapshot)
	default:
		return ""
	}

	if conn != nil && conn.Involves(event.FlightKey) {
		body += "\n\n" + connectionBlock(event, conn)
	}

	return body
}

func route(s *entity.FlightSnapshot) string {
	return fmt.Sprintf("%s → %s", s.Origin.Code, s.Destination.Code)
}

func gateWithTerminal(gate, terminal string) string {
	if gate == "" {
		return "TBD"
	}
	if terminal != "" {
		return fmt.Sprintf("%s (Terminal %s)", gate, terminal)
	}
	return gate
}

// composeMilestone selects the template keyed by milestone tag. A missing
// milestone on a milestone event is a defect upstream; the summary keeps the
// traveler from receiving nothing.
func composeMilestone(m *entity.DueMilestone, s *entity.FlightSnapshot) string {
	if m == nil {
		return statusSummary(s)
	}

	dep := utils.FormatLocal(s.BestDeparture(), s.Origin.Timezone)
	arr := utils.FormatLocal(s.BestArrival(), s.Destination.Timezone)

	switch m.Tag {
	case entity.MilestoneCheckin:
		return fmt.Sprintf(utils.CHECKIN_TEMPLATE, s.Ident, route(s), dep)
	case entity.Milestone24h:
		return withGateLine(fmt.Sprintf(utils.COUNTDOWN_TEMPLATE, s.Ident, "24 hours", route(s), dep), s)
	case entity.Milestone12h, entity.Milestone4h:
		return withGateLine(fmt.Sprintf(utils.COUNTDOWN_TEMPLATE, s.Ident, utils.FormatHours(m.HoursRemaining), route(s), dep), s)
	case entity.MilestoneBoarding:
		return fmt.Sprintf(utils.BOARDING_TEMPLATE,
			s.Ident,
			utils.FormatClock(s.BestDeparture(), s.Origin.Timezone),
			gateWithTerminal(s.GateOrigin, s.TerminalOrigin))
	case entity.MilestonePreLanding:
		msg := fmt.Sprintf(utils.PRELANDING_TEMPLATE, s.Ident, arr, destinationDisplay(s))
		if s.BaggageClaim != "" {
			msg += fmt.Sprintf("\nBaggage claim: %s", s.BaggageClaim)
		}
		if s.GateDestination != "" {
			msg += fmt.Sprintf("\nArrival gate: %s", gateWithTerminal(s.GateDestination, s.TerminalDestination))
		}
		return msg
	}
	return statusSummary(s)
}

func destinationDisplay(s *entity.FlightSnapshot) string {
	if s.Destination.City != "" {
		return fmt.Sprintf("%s (%s)", s.Destination.Code, s.Destination.City)
	}
	return s.Destination.Code
}

func withGateLine(msg string, s *entity.FlightSnapshot) string {
	if s.GateOrigin == "" {
		return msg
	}
	return msg + fmt.Sprintf("\nGate: %s", gateWithTerminal(s.GateOrigin, s.TerminalOrigin))
}

// milestoneHeadline is the one-line bold header used by combined updates.
func milestoneHeadline(m *entity.DueMilestone, s *entity.FlightSnapshot) string {
	if m == nil {
		return fmt.Sprintf("*Update for flight %s*", s.Ident)
	}
	switch m.Tag {
	case entity.MilestoneCheckin:
		return fmt.Sprintf("*Check-in is open for flight %s*", s.Ident)
	case entity.MilestoneBoarding:
		return fmt.Sprintf("*Boarding soon: flight %s*", s.Ident)
	case entity.MilestonePreLanding:
		return fmt.Sprintf("*Flight %s is landing soon*", s.Ident)
	default:
		return fmt.Sprintf("*Flight %s departs in %s*", s.Ident, utils.FormatHours(m.HoursRemaining))
	}
}

// composeChange emits one line per changed monitored field. When nothing
// headline-worthy changed, the traveler gets a full summary instead of an
// empty-seeming message.
func composeChange(changes entity.ChangeSet, s *entity.FlightSnapshot) string {
	if !changes.HasAny(headlineFields...) {
		return statusSummary(s)
	}

	header := fmt.Sprintf(utils.CHANGE_HEADER_TEMPLATE, s.Ident, route(s))
	return header + "\n\n" + strings.Join(changeLines(changes, s), "\n")
}

// composeCombined stacks a milestone header, a bullet list of changes, and
// a current-status footer.
func composeCombined(event *entity.UpdateEvent) string {
	s := event.Snapshot
	var b strings.Builder
	b.WriteString(milestoneHeadline(event.Milestone, s))
	b.WriteString("\n\n")
	for _, line := range changeLines(event.Changes, s) {
		b.WriteString("• ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(statusSummary(s))
	return b.String()
}

// changeLines renders each changed field in monitored-field order.
func changeLines(changes entity.ChangeSet, s *entity.FlightSnapshot) []string {
	var lines []string
	for _, field := range monitoredFields {
		fc, ok := changes[field]
		if !ok {
			continue
		}
		lines = append(lines, changeLine(field, fc, s))
	}
	return lines
}

func changeLine(field string, fc entity.FieldChange, s *entity.FlightSnapshot) string {
	label := changeLabels[field]
	oldSide := renderFieldValue(field, fc.Old, s)
	newSide := renderFieldValue(field, fc.New, s)

	line := fmt.Sprintf("%s: %s → %s", label, oldSide, newSide)

	// Time fields get a shift annotation when both sides are known.
	if timeFields[field] {
		if oldT, newT := parseFieldTime(fc.Old), parseFieldTime(fc.New); oldT != nil && newT != nil {
			shift := int(newT.Sub(*oldT).Minutes())
			if shift != 0 {
				line += fmt.Sprintf(" (%s)", utils.FormatShift(shift))
			}
		}
	}
	return line
}

// renderFieldValue formats one side of a change line. Absent values read as
// TBD; timestamps read as local wall-clock time.
func renderFieldValue(field string, val *string, s *entity.FlightSnapshot) string {
	if val == nil || *val == "" {
		return "TBD"
	}
	if timeFields[field] {
		if t := parseFieldTime(val); t != nil {
			tz := s.Destination.Timezone
			if departureFields[field] {
				tz = s.Origin.Timezone
			}
			return utils.FormatClock(t, tz)
		}
	}
	return *val
}

func parseFieldTime(val *string) *time.Time {
	if val == nil {
		return nil
	}
	t, err := time.Parse(time.RFC3339, *val)
	if err != nil {
		return nil
	}
	return &t
}

func statusSummary(s *entity.FlightSnapshot) string {
	status := s.Status
	if status == "" {
		status = "Unknown"
	}
	if s.Cancelled {
		status = "Cancelled"
	}
	dep := utils.FormatLocal(s.BestDeparture(), s.Origin.Timezone)
	if dep == "" {
		dep = "TBD"
	}
	arr := utils.FormatLocal(s.BestArrival(), s.Destination.Timezone)
	if arr == "" {
		arr = "TBD"
	}
	return fmt.Sprintf(utils.SUMMARY_TEMPLATE, s.Ident, route(s), status, dep, arr)
}

func composeInboundDelay(inbound *entity.InboundLegInfo, s *entity.FlightSnapshot) string {
	if inbound == nil {
		return statusSummary(s)
	}
	return fmt.Sprintf(utils.INBOUND_DELAY_TEMPLATE,
		s.Ident,
		utils.FormatMinutes(inbound.DelayMinutes),
		inboundOriginDisplay(inbound))
}

func composeInboundLanded(inbound *entity.InboundLegInfo, s *entity.FlightSnapshot) string {
	if inbound == nil {
		return statusSummary(s)
	}
	return fmt.Sprintf(utils.INBOUND_LANDED_TEMPLATE, s.Ident, inboundOriginDisplay(inbound))
}

func inboundOriginDisplay(inbound *entity.InboundLegInfo) string {
	if inbound.OriginCity != "" {
		return fmt.Sprintf("%s (%s)", inbound.Origin, inbound.OriginCity)
	}
	return inbound.Origin
}

// connectionBlock appends connection context: direction-aware header,
// layover duration, terminal-change notice, and risk advisory. The next
// flight's gate is shown only when the traveler is about to land into the
// connection.
func connectionBlock(event *entity.UpdateEvent, c *entity.Connection) string {
	var b strings.Builder

	if c.ArrivingLegIs(event.FlightKey) {
		fmt.Fprintf(&b, "*Connection to %s*\n", c.ToDestination)
	} else {
		fmt.Fprintf(&b, "*Connection from %s*\n", c.FromOrigin)
	}
	fmt.Fprintf(&b, "Layover in %s: %s", c.Airport, utils.FormatMinutes(c.Minutes))

	if c.TerminalChange {
		fmt.Fprintf(&b, "\nTerminal change: %s → %s", c.FromTerminal, c.ToTerminal)
	}
	if advisory := riskAdvisory(c.Risk); advisory != "" {
		b.WriteString("\n")
		b.WriteString(advisory)
	}

	if c.ArrivingLegIs(event.FlightKey) && isPreLanding(event) && c.ToGate != "" {
		fmt.Fprintf(&b, "\nFlight %s departs from gate %s", c.ToIdent, gateWithTerminal(c.ToGate, c.ToTerminal))
	}

	return b.String()
}

func isPreLanding(event *entity.UpdateEvent) bool {
	return event.Milestone != nil && event.Milestone.Tag == entity.MilestonePreLanding
}

func riskAdvisory(risk entity.RiskTier) string {
	switch risk {
	case entity.RiskCritical:
		return "This connection is very tight. Speak to airline staff if you expect to miss it."
	case entity.RiskTight:
		return "Short connection. Head straight to your next gate."
	case entity.RiskModerate:
		return "Allow extra time for this connection."
	default:
		return ""
	}
}
