package facturaetest

// InvoiceXML factura Facturae 3.2.2 completa sin firmar.
const InvoiceXML = `<?xml version="1.0" encoding="UTF-8"?>
<fe:Facturae xmlns:fe="http://www.facturae.gob.es/formato/Versiones/Facturaev3_2_2.xml">
  <FileHeader>
    <SchemaVersion>3.2.2</SchemaVersion>
    <Modality>I</Modality>
    <InvoiceIssuerType>EM</InvoiceIssuerType>
    <Batch>
      <BatchIdentifier>B12345678A2025-0042</BatchIdentifier>
      <InvoicesCount>1</InvoicesCount>
      <TotalInvoicesAmount><TotalAmount>1512.50</TotalAmount></TotalInvoicesAmount>
      <TotalOutstandingAmount><TotalAmount>1512.50</TotalAmount></TotalOutstandingAmount>
      <TotalExecutableAmount><TotalAmount>1512.50</TotalAmount></TotalExecutableAmount>
      <InvoiceCurrencyCode>EUR</InvoiceCurrencyCode>
    </Batch>
  </FileHeader>
  <Parties>
    <SellerParty>
      <TaxIdentification>
        <PersonTypeCode>J</PersonTypeCode>
        <ResidenceTypeCode>R</ResidenceTypeCode>
        <TaxIdentificationNumber>B12345678</TaxIdentificationNumber>
      </TaxIdentification>
      <LegalEntity>
        <CorporateName>Suministros Ñandú S.L.</CorporateName>
        <AddressInSpain>
          <Address>Calle Mayor 1</Address>
          <PostCode>28013</PostCode>
          <Town>Madrid</Town>
          <Province>Madrid</Province>
          <CountryCode>ESP</CountryCode>
        </AddressInSpain>
      </LegalEntity>
    </SellerParty>
    <BuyerParty>
      <TaxIdentification>
        <PersonTypeCode>J</PersonTypeCode>
        <ResidenceTypeCode>R</ResidenceTypeCode>
        <TaxIdentificationNumber>P2807900B</TaxIdentificationNumber>
      </TaxIdentification>
      <AdministrativeCentres>
        <AdministrativeCentre>
          <CentreCode>L01280796</CentreCode>
          <RoleTypeCode>01</RoleTypeCode>
          <Name>Intervención General</Name>
        </AdministrativeCentre>
        <AdministrativeCentre>
          <CentreCode>L01280797</CentreCode>
          <RoleTypeCode>02</RoleTypeCode>
          <Name>Área de Hacienda</Name>
        </AdministrativeCentre>
        <AdministrativeCentre>
          <CentreCode>L01280798</CentreCode>
          <RoleTypeCode>03</RoleTypeCode>
          <Name>Servicio de Compras</Name>
        </AdministrativeCentre>
      </AdministrativeCentres>
      <LegalEntity>
        <CorporateName>Ayuntamiento de Madrid</CorporateName>
        <AddressInSpain>
          <Address>Plaza de la Villa 5</Address>
          <PostCode>28005</PostCode>
          <Town>Madrid</Town>
          <Province>Madrid</Province>
          <CountryCode>ESP</CountryCode>
        </AddressInSpain>
      </LegalEntity>
    </BuyerParty>
  </Parties>
  <Invoices>
    <Invoice>
      <InvoiceHeader>
        <InvoiceNumber>0042</InvoiceNumber>
        <InvoiceSeriesCode>A2025-</InvoiceSeriesCode>
        <InvoiceDocumentType>FC</InvoiceDocumentType>
        <InvoiceClass>OO</InvoiceClass>
      </InvoiceHeader>
      <InvoiceIssueData>
        <IssueDate>2025-02-28</IssueDate>
        <InvoiceCurrencyCode>EUR</InvoiceCurrencyCode>
        <TaxCurrencyCode>EUR</TaxCurrencyCode>
        <LanguageName>es</LanguageName>
      </InvoiceIssueData>
      <TaxesOutputs>
        <Tax>
          <TaxTypeCode>01</TaxTypeCode>
          <TaxRate>21.00</TaxRate>
          <TaxableBase><TotalAmount>1250.00</TotalAmount></TaxableBase>
          <TaxAmount><TotalAmount>262.50</TotalAmount></TaxAmount>
        </Tax>
      </TaxesOutputs>
      <InvoiceTotals>
        <TotalGrossAmount>1250.00</TotalGrossAmount>
        <TotalGeneralDiscounts>0.00</TotalGeneralDiscounts>
        <TotalGeneralSurcharges>0.00</TotalGeneralSurcharges>
        <TotalGrossAmountBeforeTaxes>1250.00</TotalGrossAmountBeforeTaxes>
        <TotalTaxOutputs>262.50</TotalTaxOutputs>
        <TotalTaxesWithheld>0.00</TotalTaxesWithheld>
        <InvoiceTotal>1512.50</InvoiceTotal>
        <TotalOutstandingAmount>1512.50</TotalOutstandingAmount>
        <TotalExecutableAmount>1512.50</TotalExecutableAmount>
      </InvoiceTotals>
      <Items>
        <InvoiceLine>
          <ItemDescription>Papel A4 80 g (caja 5 paquetes)</ItemDescription>
          <Quantity>50</Quantity>
          <UnitOfMeasure>01</UnitOfMeasure>
          <UnitPriceWithoutTax>20.000000</UnitPriceWithoutTax>
          <TotalCost>1000.00</TotalCost>
          <GrossAmount>1000.00</GrossAmount>
        </InvoiceLine>
        <InvoiceLine>
          <ItemDescription>Tóner láser negro</ItemDescription>
          <Quantity>2.5</Quantity>
          <UnitOfMeasure>01</UnitOfMeasure>
          <UnitPriceWithoutTax>100</UnitPriceWithoutTax>
          <TotalCost>250</TotalCost>
          <GrossAmount>250</GrossAmount>
        </InvoiceLine>
      </Items>
      <LegalLiterals>
        <LegalReference>Operación sujeta a IVA</LegalReference>
        <LegalReference>   </LegalReference>
        <LegalReference> Inscrita en el Registro Mercantil de Madrid </LegalReference>
      </LegalLiterals>
      <AdditionalData>
        <InvoiceAdditionalInformation>  Pedido 2025/118  </InvoiceAdditionalInformation>
      </AdditionalData>
    </Invoice>
  </Invoices>
</fe:Facturae>
`

// MinimalXML raíz Facturae sin contenido.
const MinimalXML = `<?xml version="1.0" encoding="UTF-8"?>
<fe:Facturae xmlns:fe="http://www.facturae.gob.es/formato/Versiones/Facturaev3_2_2.xml"></fe:Facturae>`
