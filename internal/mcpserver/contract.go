package mcpserver

// CalendarFormatContract describes the calendar file format that LLM
// consumers must follow when writing event files.
const CalendarFormatContract = `# Harmoni Calendar File Format

Calendar files live in the calendar data directory and are imported as soon
as they are written. Every file holds a list of events.

## Structure

` + "```" + `yaml
events:
  - date: 2026-03-19            # REQUIRED – YYYY-MM-DD
    title: Idul Fitri 1447 H    # REQUIRED
    location: Masjid Istiqlal   # OPTIONAL
    agama: Islam                # REQUIRED – see the list below
` + "```" + `

## Rules

1. **File names** end with ` + "`" + `.yaml` + "`" + ` or ` + "`" + `.yml` + "`" + ` and use forward slashes.
   Names starting with a dot are ignored.
2. **` + "`" + `agama` + "`" + `** is one of Islam, Katolik, KristenProtestan, Buddha, Hindu, Konghucu.
3. **One bad event rejects the whole file.** Nothing from it is imported until it is fixed.
4. **Writing a file replaces** every event previously imported from it; deleting the
   file removes them.
5. **Christian holidays** (Jumat Agung, Paskah, Kenaikan Isa Almasih, Natal) are
   computed per year and need not be listed. An entry with the same date and agama
   takes precedence over the computed one.
6. **A year with no imported events** falls back to the built-in event list.
`
