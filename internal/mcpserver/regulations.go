package mcpserver

// RegulationsReference is the Transport Canada maintenance reference document
// served to LLM consumers. The values mirror the defaults the application
// applies when an aircraft has no stored component settings.
const RegulationsReference = `# Canadian Maintenance Interval Reference

Reference values used by AeroLogix for small piston aircraft operated
privately in Canada. They are informational only; the official documents
(CARs RAC 605, Standard 625 Appendix C) and a certified AME always take
precedence.

## Airframe

- Annual inspection: every 12 months (CAR 605.86, Standard 625 Appendix B).

## Engine

- Typical TBO for small piston engines: 2000 hours (manufacturer service
  documents; TBO is not mandatory for private operation but is the accepted
  planning baseline).

## Propeller

- Fixed pitch: inspection/overhaul at 5 years.
- Variable pitch: manufacturer interval, or 10 years when the manufacturer
  publishes none.

## Avionics

- Transponder and altimeter certification: every 24 months (CAR 605.35,
  Standard 571 Appendix B/F).

## Magnetos

- Inspection commonly recommended every 500 hours.

## Vacuum pump

- Replacement commonly recommended every 400 hours or per manufacturer.

## ELT

- Performance test: every 12 months (CAR 605.38, Standard 571 Appendix G).
- Battery: replace before the expiry date marked on the unit.
`
