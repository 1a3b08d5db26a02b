package utils

// Message templates for traveler-facing notifications. Formatting sticks to
// the delivery channel's light markup: bold via surrounding asterisks, blank
// lines between paragraphs.

const CHECKIN_TEMPLATE = `*Check-in is open for flight %s*

Route: %s
Departs: %s

Online check-in with your airline is now available.`

const COUNTDOWN_TEMPLATE = `*Flight %s departs in %s*

Route: %s
Departs: %s`

const BOARDING_TEMPLATE = `*Boarding soon: flight %s*

Departs: %s
Gate: %s`

const PRELANDING_TEMPLATE = `*Flight %s is landing soon*

Arrives: %s at %s`

const INBOUND_DELAY_TEMPLATE = `*Heads up: your aircraft is running late*

The aircraft for flight %s is arriving about %s behind schedule from %s.
Your departure may be affected.`

const INBOUND_LANDED_TEMPLATE = `*Your aircraft has landed*

The aircraft for flight %s has arrived from %s.
Departure preparations are underway.`

const CHANGE_HEADER_TEMPLATE = `*Update for flight %s (%s)*`

const SUMMARY_TEMPLATE = `Flight %s (%s)
Status: %s
Departs: %s
Arrives: %s`
