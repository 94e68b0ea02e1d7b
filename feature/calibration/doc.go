// Package calibration turns filled calibration workbooks into reconciliation batches.
//
// # Workbook
//
// The template holds one header row: Origin_Serial, Local_Serial, Reading_Before,
// Reading_After, the four Corner_* deviations, Max_Load and Zero. Workbooks using the
// older Portuguese headers (Serial_China, Novo_Serial_Brasil, ...) are read as well.
// The configured sheet is read, falling back to the first sheet.
//
// # Flow
//
//  1. The workbook is parsed; empty rows are dropped.
//  2. The batch gate is checked (client, order, origin serial column).
//  3. Live uploads are archived to object storage when storage is enabled.
//  4. reconcile.Run matches the rows on one reserved inventory connection.
//
// Previews run the same steps in dry-run mode and skip the archive.
package calibration
